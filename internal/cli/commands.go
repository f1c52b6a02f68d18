package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	params "github.com/goliatone/go-params"
	"github.com/goliatone/go-params/schema/openapi"
)

func (c *CLI) classesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the object classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range classNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (c *CLI) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe CLASS [Class:key=value ...]",
		Short: "Print the help block of every parameter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := c.build(args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), obj.Options().Describe())
			return nil
		},
	}
}

func (c *CLI) scriptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "script CLASS [Class:key=value ...]",
		Short: "Print the lines that reproduce the non-default values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := c.build(args[0], args[1:])
			if err != nil {
				return err
			}
			lines := obj.Options().Script(strings.ToLower(obj.Name()))
			if len(lines) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			}
			return nil
		},
	}
}

func (c *CLI) schemaCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema CLASS",
		Short: "Print the parameter schema as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := c.build(args[0], args[1:])
			if err != nil {
				return err
			}
			var generator params.SchemaGenerator
			switch params.SchemaFormat(format) {
			case params.SchemaFormatDescriptors:
				generator = params.DefaultSchemaGenerator()
			case params.SchemaFormatOpenAPI:
				generator = openapi.NewGenerator(
					openapi.WithInfo(obj.Class()+" Parameters", "1.0.0"),
					openapi.WithOperation("/"+strings.ToLower(obj.Class()), "put", ""),
					openapi.WithSummary("Apply "+obj.Class()+" parameters"),
					openapi.WithReadOperation(),
				)
			default:
				return fmt.Errorf("unknown schema format %q", format)
			}
			doc, err := generator.Generate(obj.Options())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc.Document, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(params.SchemaFormatDescriptors), "schema format: descriptors or openapi")
	return cmd
}
