package main

import (
	"io"
	"strings"

	"github.com/itsatony/go-thymeleaf"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli holds the state shared by all commands of one invocation
type cli struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// newRootCmd builds the command tree. Each call gets its own viper
// instance so repeated runs in one process do not share settings.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(EnvKeyOldChar, EnvKeyNewChar))
	c.v.AutomaticEnv()
	c.v.SetConfigType(ConfigType)

	defaults := thymeleaf.DefaultConfig()
	c.v.SetDefault(ConfigKeyPrefix, defaults.Prefix)
	c.v.SetDefault(ConfigKeyTemplateRoot, defaults.TemplateRoot)
	c.v.SetDefault(ConfigKeyTemplateSuffix, defaults.TemplateSuffix)
	c.v.SetDefault(ConfigKeyCacheTTL, defaults.CacheTTL)
	c.v.SetDefault(ConfigKeyMaxExpressionDepth, defaults.MaxExpressionDepth)

	root := &cobra.Command{
		Use:           CLIName,
		Short:         CLIDescription,
		Long:          CLILong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newCLIError(ExitCodeUsageError, err.Error(), nil)
	})

	root.PersistentFlags().StringP(FlagConfig, FlagConfigShort, "", UsageConfig)
	root.PersistentFlags().BoolP(FlagVerbose, FlagVerboseShort, false, UsageVerbose)
	_ = c.v.BindPFlags(root.PersistentFlags())

	root.AddCommand(c.newRenderCmd(), c.newVersionCmd())
	return root
}

// settings reads the optional config file and returns the merged engine config
func (c *cli) settings() (*thymeleaf.Config, error) {
	if path := c.v.GetString(FlagConfig); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return nil, newCLIError(ExitCodeConfigError, ErrMsgConfigFailed, err)
		}
	}

	config := &thymeleaf.Config{
		Prefix:             c.v.GetString(ConfigKeyPrefix),
		TemplateRoot:       c.v.GetString(ConfigKeyTemplateRoot),
		TemplateSuffix:     c.v.GetString(ConfigKeyTemplateSuffix),
		CacheTTL:           c.v.GetDuration(ConfigKeyCacheTTL),
		MaxExpressionDepth: c.v.GetInt(ConfigKeyMaxExpressionDepth),
	}
	if err := config.Validate(); err != nil {
		return nil, newCLIError(ExitCodeConfigError, ErrMsgConfigFailed, err)
	}
	return config, nil
}

// logger returns a development console logger on stderr when verbose is set
func (c *cli) logger() *zap.Logger {
	if !c.v.GetBool(FlagVerbose) {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(c.stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
