package main

import (
	"github.com/itsatony/go-thymeleaf"
	"github.com/spf13/cobra"
)

func (c *cli) newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     CmdNameRender,
		Short:   RenderShort,
		Example: RenderExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringP(FlagTemplate, FlagTemplateShort, "", UsageTemplate)
	flags.StringP(FlagName, FlagNameShort, "", UsageName)
	flags.StringP(FlagData, FlagDataShort, "", UsageData)
	flags.StringP(FlagDataFile, FlagDataFileShort, "", UsageDataFile)
	flags.StringP(FlagOutput, FlagOutputShort, FlagDefaultOutput, UsageOutput)
	_ = c.v.BindPFlags(flags)

	return cmd
}

func (c *cli) runRender(cmd *cobra.Command) error {
	templatePath := c.v.GetString(FlagTemplate)
	templateName := c.v.GetString(FlagName)
	switch {
	case templatePath == "" && templateName == "":
		return newCLIError(ExitCodeUsageError, ErrMsgMissingTemplate, nil)
	case templatePath != "" && templateName != "":
		return newCLIError(ExitCodeUsageError, ErrMsgConflictingSource, nil)
	}

	config, err := c.settings()
	if err != nil {
		return err
	}

	data, err := loadData(c.v.GetString(FlagData), c.v.GetString(FlagDataFile))
	if err != nil {
		return newCLIError(ExitCodeInputError, ErrMsgInvalidData, err)
	}

	opts, err := config.Options()
	if err != nil {
		return newCLIError(ExitCodeConfigError, ErrMsgConfigFailed, err)
	}
	opts = append(opts, thymeleaf.WithLogger(c.logger()))

	engine, err := thymeleaf.New(opts...)
	if err != nil {
		return newCLIError(ExitCodeConfigError, ErrMsgEngineFailed, err)
	}

	ctx := cmd.Context()
	var output string
	if templateName != "" {
		output, err = engine.ProcessTemplate(ctx, templateName, data)
	} else {
		source, readErr := readInput(templatePath, c.stdin)
		if readErr != nil {
			return newCLIError(ExitCodeInputError, ErrMsgReadFileFailed, readErr)
		}
		output, err = engine.Process(ctx, string(source), data)
	}
	if err != nil {
		return newCLIError(ExitCodeError, ErrMsgRenderFailed, err)
	}

	if err := writeOutput(c.v.GetString(FlagOutput), []byte(output), c.stdout); err != nil {
		return newCLIError(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}
	return nil
}
