// Package fileresolve builds GraphQL resolvers expanding stored file ids into file records.
package fileresolve

import (
	"context"
	"reflect"

	"github.com/jensneuse/abstractlogger"

	"github.com/vulcan-files/graphql-files/pkg/fieldschema"
	"github.com/vulcan-files/graphql-files/pkg/fileid"
	"github.com/vulcan-files/graphql-files/pkg/filestore"
)

// Resolver resolves every file referenced by a document field.
type Resolver func(ctx context.Context, document fieldschema.Document) ([]*filestore.File, error)

// SingleResolver resolves at most one file. A nil file without error means no file.
type SingleResolver func(ctx context.Context, document fieldschema.Document) (*filestore.File, error)

type Option func(options *resolverOptions)

type resolverOptions struct {
	log abstractlogger.Logger
}

func WithLogger(log abstractlogger.Logger) Option {
	return func(options *resolverOptions) {
		options.log = log
	}
}

func newResolverOptions(opts []Option) resolverOptions {
	options := resolverOptions{
		log: abstractlogger.NoopLogger,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.log == nil {
		options.log = abstractlogger.NoopLogger
	}
	return options
}

// CreateResolverMultiple returns a Resolver for fieldName, which holds a single file reference or a list of them.
// References are turned into ids using resolveID, references without a string id are skipped.
// Files are returned in the order of their references, references to unknown files are dropped.
// Errors of collection are returned unchanged.
func CreateResolverMultiple(fieldName string, collection filestore.Collection, resolveID fileid.ResolveFunc, opts ...Option) Resolver {
	options := newResolverOptions(opts)
	if resolveID == nil {
		resolveID = fileid.Default
	}

	return func(ctx context.Context, document fieldschema.Document) ([]*filestore.File, error) {
		ids := referencedIDs(document[fieldName], resolveID)
		if len(ids) == 0 {
			return []*filestore.File{}, nil
		}

		found, err := collection.FindByIDs(ctx, ids)
		if err != nil {
			options.log.Debug("fileresolve.ResolverMultiple",
				abstractlogger.String("field", fieldName),
				abstractlogger.Error(err),
			)
			return nil, err
		}

		byID := make(map[string]*filestore.File, len(found))
		for _, file := range found {
			if file != nil {
				byID[file.ID] = file
			}
		}
		files := make([]*filestore.File, 0, len(ids))
		for _, id := range ids {
			if file, ok := byID[id]; ok {
				files = append(files, file)
			}
		}

		options.log.Debug("fileresolve.ResolverMultiple",
			abstractlogger.String("field", fieldName),
			abstractlogger.Int("requested", len(ids)),
			abstractlogger.Int("resolved", len(files)),
		)
		return files, nil
	}
}

// CreateResolverSingle returns a SingleResolver resolving the first file referenced by fieldName.
func CreateResolverSingle(fieldName string, collection filestore.Collection, resolveID fileid.ResolveFunc, opts ...Option) SingleResolver {
	return Single(CreateResolverMultiple(fieldName, collection, resolveID, opts...))
}

// Single adapts resolver to return its first file, or nil when it resolves no file.
// Errors of resolver are returned unchanged.
func Single(resolver Resolver) SingleResolver {
	return func(ctx context.Context, document fieldschema.Document) (*filestore.File, error) {
		files, err := resolver(ctx, document)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, nil
		}
		return files[0], nil
	}
}

// referencedIDs returns the non-empty string ids of value, which is a reference or a list of references.
func referencedIDs(value interface{}, resolveID fileid.ResolveFunc) []string {
	if value == nil {
		return nil
	}

	var references []interface{}
	switch v := value.(type) {
	case []interface{}:
		references = v
	case []string:
		references = make([]interface{}, len(v))
		for i := range v {
			references[i] = v[i]
		}
	default:
		list := reflect.ValueOf(value)
		if list.Kind() == reflect.Slice || list.Kind() == reflect.Array {
			references = make([]interface{}, list.Len())
			for i := 0; i < list.Len(); i++ {
				references[i] = list.Index(i).Interface()
			}
		} else {
			references = []interface{}{value}
		}
	}

	ids := make([]string, 0, len(references))
	for _, reference := range references {
		id, ok := fileid.String(resolveID, reference)
		if !ok || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
