package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/infrastructure/projectfile"
)

type configSource struct {
	preset string
	file   string
}

func (s *configSource) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.preset, "preset", "", "named preset instead of the default configuration")
	cmd.Flags().StringVar(&s.file, "file", "", "YAML or JSON project file instead of the default configuration")
	cmd.MarkFlagsMutuallyExclusive("preset", "file")
}

func (s *configSource) load() (*domain.ProjectConfig, error) {
	switch {
	case s.file != "":
		return projectfile.Load(s.file)
	case s.preset != "":
		cfg, ok := domain.Preset(s.preset)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, s.preset)
		}
		return cfg, nil
	default:
		return domain.DefaultProjectConfig(), nil
	}
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate project configurations",
	}
	cmd.AddCommand(configShowCmd(), configValidateCmd(), configPresetsCmd(), configAccessCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var src configSource
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a project configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := src.load()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cfg.Spec())
		},
	}
	src.bind(cmd)
	return cmd
}

func configValidateCmd() *cobra.Command {
	var src configSource
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a project configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := src.load()
			if err != nil {
				return err
			}
			res := domain.ValidateConfiguration(cfg)
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Valid {
				return domain.NewViolationError(domain.ErrInvalidConfig, res.Violations)
			}
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}

func configPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range domain.PresetNames() {
				cfg, _ := domain.Preset(name)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, cfg.ProjectName()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func configAccessCmd() *cobra.Command {
	var src configSource
	cmd := &cobra.Command{
		Use:   "access <role> <module>",
		Short: "Report whether a role may use a module",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := src.load()
			if err != nil {
				return err
			}
			role, module := domain.Role(args[0]), domain.Module(args[1])
			allowed := cfg.IsRoleEnabled(role) && cfg.IsModuleEnabled(role, module)
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %t\n", role, module, allowed); err != nil {
				return err
			}
			if !allowed {
				return errors.New("access denied")
			}
			return nil
		},
	}
	src.bind(cmd)
	return cmd
}
