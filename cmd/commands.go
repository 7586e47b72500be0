package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxpr/content-intel/entity"
)

func newEntityTypesCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "entity-types",
		Short: "List the entity types the host schema exposes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			types, err := a.svc.EntityTypes(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(types))
			for i, t := range types {
				rows[i] = []string{t.ID, t.Label}
			}
			return render(cmd.OutOrStdout(), flags.format, types, []string{"ID", "LABEL"}, rows)
		},
	}
}

func newBundlesCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "bundles <entity-type>",
		Short: "List the bundles of an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			bundles, err := a.svc.Bundles(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(bundles))
			for i, b := range bundles {
				rows[i] = []string{b.ID, b.Label}
			}
			return render(cmd.OutOrStdout(), flags.format, bundles, []string{"ID", "LABEL"}, rows)
		},
	}
}

func newFieldsCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <entity-type> <bundle>",
		Short: "List the field definitions of a bundle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			fields, err := a.svc.Fields(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			rows := make([][]string, len(fields))
			for i, f := range fields {
				rows[i] = []string{f.Name, f.Label, f.Type, strconv.FormatBool(f.Required)}
			}
			return render(cmd.OutOrStdout(), flags.format, fields,
				[]string{"NAME", "LABEL", "TYPE", "REQUIRED"}, rows)
		},
	}
}

func newPluginsCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the plugin catalogue, unavailable plugins included",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			infos := a.svc.Plugins()

			rows := make([][]string, len(infos))
			for i, p := range infos {
				scope := "all"
				if len(p.EntityTypes) > 0 {
					scope = strings.Join(p.EntityTypes, ",")
				}
				rows[i] = []string{p.ID, p.Label, strconv.Itoa(p.Weight),
					strconv.FormatBool(p.Available), scope}
			}
			return render(cmd.OutOrStdout(), flags.format, infos,
				[]string{"ID", "LABEL", "WEIGHT", "AVAILABLE", "ENTITY TYPES"}, rows)
		},
	}
}

func newEntitiesCommand(flags *rootFlags) *cobra.Command {
	var bundle, label string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "entities <entity-type>",
		Short: "List entities, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}

			q := entity.Query{
				EntityType: args[0],
				Bundle:     bundle,
				Limit:      limit,
				Offset:     offset,
			}
			if label != "" {
				q.Conditions = map[string]string{"label": label}
			}
			summaries, err := a.svc.ListEntities(cmd.Context(), q)
			if err != nil {
				return err
			}

			rows := make([][]string, len(summaries))
			for i, s := range summaries {
				rows[i] = []string{s.ID, s.Label, s.Bundle, s.Langcode}
			}
			return render(cmd.OutOrStdout(), flags.format, summaries,
				[]string{"ID", "LABEL", "BUNDLE", "LANGCODE"}, rows)
		},
	}
	cmd.Flags().StringVar(&bundle, "bundle", "", "restrict to one bundle")
	cmd.Flags().StringVar(&label, "label", "", "label substring filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	return cmd
}

func newSummaryCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <entity-type> <id>",
		Short: "Show an entity's identity snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			sum, err := a.svc.EntitySummary(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), sum)
		},
	}
}

func newIntelCommand(flags *rootFlags) *cobra.Command {
	var fields, pluginIDs []string

	cmd := &cobra.Command{
		Use:   "intel <entity-type> <id>",
		Short: "Collect the intel report for one entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			report, err := a.svc.CollectIntel(cmd.Context(), args[0], args[1], fields, pluginIDs)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "restrict the field snapshot")
	cmd.Flags().StringSliceVar(&pluginIDs, "plugins", nil, "restrict to these plugins")
	return cmd
}

func newBatchCommand(flags *rootFlags) *cobra.Command {
	var fields, pluginIDs []string

	cmd := &cobra.Command{
		Use:   "batch <entity-type> <id>...",
		Short: "Collect intel reports for several entities",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			result, err := a.svc.CollectIntelBatch(cmd.Context(), args[0], args[1:], fields, pluginIDs)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "restrict the field snapshot")
	cmd.Flags().StringSliceVar(&pluginIDs, "plugins", nil, "restrict to these plugins")
	return cmd
}

func newServeCommand(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags.configPath, flags.dataPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.settings.HTTP.Addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
			return a.serveHTTP(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, defaults to the configured one")
	return cmd
}
