package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=abc123 -X main.buildTime=..."
var (
	version   = ""
	commit    = VersionUnknown
	buildTime = VersionUnknown
)

// versionInfo is the text and JSON form of the version command output
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func (c *cli) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.runVersion()
		},
	}
	cmd.Flags().StringP(FlagFormat, FlagFormatShort, FlagDefaultFormat, UsageFormat)
	_ = c.v.BindPFlags(cmd.Flags())
	return cmd
}

func (c *cli) runVersion() error {
	format := c.v.GetString(FlagFormat)
	info := getVersionInfo()

	switch format {
	case OutputFormatText:
		fmt.Fprintf(c.stdout, VersionTextTemplate+FmtNewline,
			info.Version, info.Commit, info.BuildTime, info.GoVersion)
		return nil
	case OutputFormatJSON:
		jsonBytes, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return newCLIError(ExitCodeError, ErrMsgJSONMarshalFailed, err)
		}
		fmt.Fprintln(c.stdout, string(jsonBytes))
		return nil
	default:
		return newCLIError(ExitCodeUsageError, ErrMsgInvalidFormat+": "+format, nil)
	}
}

// getVersionInfo prefers ldflags values and falls back to the module build info
func getVersionInfo() versionInfo {
	info := versionInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
	if info.Version == "" {
		info.Version = VersionUnknown
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != VersionDevel {
			info.Version = bi.Main.Version
		}
	}
	return info
}
