package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

const logPattern = "gridicon-streamdeck-plugin.*.log"

func (c *CLI) newLogsCmd() *cobra.Command {
	var (
		clearLogs bool
		follow    bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the latest plugin log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := c.logFiles()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if clearLogs {
				for _, file := range files {
					if err := os.Remove(file); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "error removing file: %v\n", err)
					}
				}
				return nil
			}

			if len(files) == 0 {
				_, err := fmt.Fprintln(out, "No log files found.")
				return err
			}

			file, err := os.Open(files[0])
			if err != nil {
				return err
			}
			defer file.Close()

			reader := bufio.NewReader(file)
			ctx := cmd.Context()
			for {
				line, err := reader.ReadString('\n')
				fmt.Fprint(out, line)
				if err == nil {
					continue
				}
				if err != io.EOF || !follow {
					if err == io.EOF {
						return nil
					}
					return err
				}
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(time.Second / 10):
				}
			}
		},
	}

	cmd.Flags().BoolVar(&clearLogs, "clear", false, "Remove the log files instead of printing")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")

	return cmd
}

// logFiles returns the configured log file, or the plugin logs in the temp
// directory, newest first.
func (c *CLI) logFiles() ([]string, error) {
	if c.cfg.LogFile != "" {
		if _, err := os.Stat(c.cfg.LogFile); err != nil {
			return nil, nil
		}
		return []string{c.cfg.LogFile}, nil
	}
	files, err := filepath.Glob(filepath.Join(os.TempDir(), logPattern))
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		fileInfoI, errI := os.Stat(files[i])
		fileInfoJ, errJ := os.Stat(files[j])
		if errI != nil || errJ != nil {
			return false
		}
		return fileInfoI.ModTime().After(fileInfoJ.ModTime())
	})
	return files, nil
}
