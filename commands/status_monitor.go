package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const metricsChunkSize = 4096

type metric struct {
	key    string
	label  string
	format string
}

var (
	metricCPU             = metric{"cpu_usage_percentage", "CPU Usage", "%.2f%%"}
	metricMemory          = metric{"memory_usage_percentage", "Memory Usage", "%.2f%%"}
	metricDiskReads       = metric{"disk_reads", "Disk Reads", "%.0f"}
	metricDiskWrites      = metric{"disk_writes", "Disk Writes", "%.0f"}
	metricDiskReadTime    = metric{"disk_read_time_seconds", "Disk Read Time (s)", "%.2f"}
	metricDiskWriteTime   = metric{"disk_write_time_seconds", "Disk Write Time (s)", "%.2f"}
	metricNetworkRX       = metric{"network_bandwidth_rx", "Network RX (bytes)", "%.0f"}
	metricNetworkTX       = metric{"network_bandwidth_tx", "Network TX (bytes)", "%.0f"}
	metricPacketRatio     = metric{"network_packet_ratio", "Packet Ratio", "%.2f"}
	metricProcesses       = metric{"running_processes_count", "Running Processes", "%.0f"}
	metricContextSwitches = metric{"context_switches_total", "Context Switches", "%.0f"}
)

func printStatusMonitorHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Help for status_monitor command ---")
	fmt.Fprintln(w, "Usage: status_monitor [options]")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -c     Shows only CPU usage")
	fmt.Fprintln(w, "  -m     Shows only memory usage")
	fmt.Fprintln(w, "  -d     Shows only disk statistics (reads, writes, time)")
	fmt.Fprintln(w, "  -n     Shows only network statistics (bandwidth, packet ratio)")
	fmt.Fprintln(w, "  -p     Shows only the count of running processes and context switches")
	fmt.Fprintln(w, "  -s     Shows only context switches")
	fmt.Fprintln(w, "Options can be combined. No option: Shows all system metrics")
	fmt.Fprintln(w, "-------------------------------------------")
	fmt.Fprintln(w)
}

// StatusMonitor reads metrics the monitor writes to its named pipe and
// prints the selected ones.
func StatusMonitor(env *Env) int {
	cmd := &SimpleCommand{
		Use:   "status_monitor [-c|-m|-d|-n|-p|-s]",
		Short: "Displays the system monitoring status.",
		Help:  printStatusMonitorHelp,
	}

	opts := cmd.Flags()
	cpu := opts.Bool('c', "show CPU usage")
	memory := opts.Bool('m', "show memory usage")
	disk := opts.Bool('d', "show disk statistics")
	network := opts.Bool('n', "show network statistics")
	processes := opts.Bool('p', "show running processes and context switches")
	switches := opts.Bool('s', "show context switches")

	return cmd.Run(env, func() int {
		var selected []metric
		seen := make(map[string]bool)
		add := func(enabled bool, metrics ...metric) {
			if !enabled {
				return
			}
			for _, m := range metrics {
				if !seen[m.key] {
					seen[m.key] = true
					selected = append(selected, m)
				}
			}
		}

		add(*cpu, metricCPU)
		add(*memory, metricMemory)
		add(*disk, metricDiskReads, metricDiskWrites, metricDiskReadTime, metricDiskWriteTime)
		add(*network, metricNetworkRX, metricNetworkTX, metricPacketRatio)
		add(*processes, metricProcesses, metricContextSwitches)
		add(*switches, metricContextSwitches)
		add(len(selected) == 0,
			metricCPU, metricMemory,
			metricDiskReads, metricDiskWrites, metricDiskReadTime, metricDiskWriteTime,
			metricNetworkRX, metricNetworkTX, metricPacketRatio,
			metricProcesses, metricContextSwitches)

		pipePath := env.config().Monitor.PipePath
		fd, err := env.fs().Open(pipePath)
		if err != nil {
			env.Errorf("couldn't open pipe to read metrics: %v", err)
			return 1
		}
		defer fd.Close()

		maxReads := env.config().Monitor.MaxReads
		buf := make([]byte, metricsChunkSize)
		for reads := 0; maxReads == 0 || reads < maxReads; reads++ {
			n, err := fd.Read(buf)
			if n > 0 {
				printMetricsChunk(env, buf[:n], selected)
			}

			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				env.Errorf("couldn't read from pipe: %v", err)
				return 1
			}
		}

		return 0
	})
}

// printMetricsChunk prints the last complete JSON object in chunk.
func printMetricsChunk(env *Env, chunk []byte, selected []metric) {
	s := string(chunk)
	start := strings.LastIndex(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return
	}

	object := s[start : end+1]
	var values map[string]interface{}
	if err := json.Unmarshal([]byte(object), &values); err != nil {
		env.Errorf("couldn't parse metrics %q: %v", object, err)
		return
	}

	w := env.Stdout
	fmt.Fprintln(w)
	fmt.Fprintln(w, "------ Monitoring System ------")
	for _, m := range selected {
		value, _ := values[m.key].(float64)
		fmt.Fprintf(w, "%s: "+m.format+"\n", m.label, value)
	}
	fmt.Fprintln(w, "----------------------------------")
}

var _ Builtin = StatusMonitor
