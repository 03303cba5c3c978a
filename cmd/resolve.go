package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"

	"github.com/vulcan-files/graphql-files/pkg/fieldschema"
	"github.com/vulcan-files/graphql-files/pkg/fileid"
	"github.com/vulcan-files/graphql-files/pkg/fileresolve"
	"github.com/vulcan-files/graphql-files/pkg/filestore"
)

func newResolveCommand() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:     "resolve",
		Short:   "resolve prints the files referenced by a document field",
		Example: "filefield resolve --files files.json --document movie.json --field avatarId",
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
				return fmt.Errorf("resolve: --field is required")
			}

			filesData, err := os.ReadFile(v.GetString("files"))
			if err != nil {
				return err
			}
			documentData, err := os.ReadFile(v.GetString("document"))
			if err != nil {
				return err
			}

			var document fieldschema.Document
			if err := json.Unmarshal(documentData, &document); err != nil {
				return fmt.Errorf("resolve: decode document: %w", err)
			}

			memory := filestore.NewMemoryCollection(log)
			count, err := memory.LoadJSON(filesData)
			if err != nil {
				return err
			}
			collection, err := filestore.NewCachedCollection(memory, v.GetInt("cache-size"), log)
			if err != nil {
				return err
			}
			log.Debug("resolve.LoadFiles", abstractlogger.Int("files", count))

			opts := []fileresolve.Option{fileresolve.WithLogger(log)}
			var result interface{}
			if v.GetBool("multiple") {
				files, err := fileresolve.CreateResolverMultiple(fieldName, collection, fileid.Default, opts...)(context.Background(), document)
				if err != nil {
					return err
				}
				records := make([]json.RawMessage, len(files))
				for i := range files {
					records[i] = files[i].Raw
				}
				result = records
			} else {
				file, err := fileresolve.CreateResolverSingle(fieldName, collection, fileid.Default, opts...)(context.Background(), document)
				if err != nil {
					return err
				}
				if file != nil {
					result = file.Raw
				}
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	flags := resolveCmd.Flags()
	flags.String("files", "", "JSON array of file records")
	flags.String("document", "", "JSON document holding the file field")
	flags.String("field", "", "name of the field storing the file id(s)")
	flags.Bool("multiple", false, "resolve every referenced file")
	flags.Int("cache-size", 128, "number of file records kept in the cache")
	return resolveCmd
}
