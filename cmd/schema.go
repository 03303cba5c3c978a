package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/vulcan-files/graphql-files/pkg/fieldschema"
	"github.com/vulcan-files/graphql-files/pkg/filefield"
	"github.com/vulcan-files/graphql-files/pkg/filesdl"
)

func newSchemaCommand() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:     "schema",
		Short:   "schema prints the generated schema of a file field",
		Example: "filefield schema --field avatarId --resolver avatar --format yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(v.GetBool("verbose"))
			if err != nil {
				return err
			}

			fieldName := v.GetString("field")
			if fieldName == "" {
				return fmt.Errorf("schema: --field is required")
			}

			options := filefield.Options{
				ResolverName: v.GetString("resolver"),
				Multiple:     v.GetBool("multiple"),
			}
			if typeName := v.GetString("type"); typeName != "" {
				options.FieldType, err = fieldschema.ParseType(typeName)
				if err != nil {
					return err
				}
			}
			if label := v.GetString("label"); label != "" {
				options.FieldSchema = &fieldschema.FieldSchema{Label: label}
			}

			schema := filefield.GenerateFieldSchemaBase(fieldName, options)
			log.Debug("schema.Generate",
				abstractlogger.String("field", fieldName),
				abstractlogger.String("resolver", options.ResolverName),
				abstractlogger.Int("entries", len(schema)),
			)

			if typeName := v.GetString("sdl"); typeName != "" {
				sdl, err := filesdl.ExtendType(typeName, schema)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), sdl)
				return err
			}

			return writeSchema(cmd.OutOrStdout(), v.GetString("format"), schema)
		},
	}

	flags := schemaCmd.Flags()
	flags.String("field", "", "name of the field storing the file id(s)")
	flags.String("resolver", "", "name of the GraphQL field exposing the resolved file(s)")
	flags.Bool("multiple", false, "store a list of file ids")
	flags.String("type", "", "stored id type (String, Number, Integer, ...)")
	flags.String("label", "", "form label of the field")
	flags.String("format", "json", "output format: json, yaml or dump")
	flags.String("sdl", "", "print the GraphQL type extension for the given type instead")
	return schemaCmd
}

func writeSchema(out io.Writer, format string, schema fieldschema.Schema) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(schema)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "dump":
		spew.Fdump(out, schema)
		return nil
	}
	return fmt.Errorf("schema: unknown format %q", format)
}
