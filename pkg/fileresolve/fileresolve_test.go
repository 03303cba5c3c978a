package fileresolve

import (
	"context"
	"errors"
	"testing"

	"github.com/jensneuse/abstractlogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vulcan-files/graphql-files/pkg/fieldschema"
	"github.com/vulcan-files/graphql-files/pkg/fileid"
	"github.com/vulcan-files/graphql-files/pkg/filestore"
)

type stubCollection struct {
	files []*filestore.File
	err   error
	calls [][]string
}

func (s *stubCollection) FindByIDs(_ context.Context, ids []string) ([]*filestore.File, error) {
	s.calls = append(s.calls, ids)
	if s.err != nil {
		return nil, s.err
	}
	result := make([]*filestore.File, 0, len(ids))
	for _, file := range s.files {
		for _, id := range ids {
			if file.ID == id {
				result = append(result, file)
				break
			}
		}
	}
	return result, nil
}

func newStubCollection(ids ...string) *stubCollection {
	collection := &stubCollection{}
	for _, id := range ids {
		collection.files = append(collection.files, &filestore.File{ID: id})
	}
	return collection
}

func ids(files []*filestore.File) []string {
	out := make([]string, len(files))
	for i := range files {
		out[i] = files[i].ID
	}
	return out
}

func TestCreateResolverMultiple(t *testing.T) {
	ctx := context.Background()

	t.Run("single reference", func(t *testing.T) {
		collection := newStubCollection("f1", "f2")
		resolve := CreateResolverMultiple("avatarId", collection, fileid.Default)

		files, err := resolve(ctx, fieldschema.Document{"avatarId": "f2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"f2"}, ids(files))
	})

	t.Run("keeps reference order", func(t *testing.T) {
		collection := newStubCollection("f1", "f2", "f3")
		resolve := CreateResolverMultiple("photoIds", collection, nil)

		files, err := resolve(ctx, fieldschema.Document{"photoIds": []interface{}{"f3", "missing", "f1"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"f3", "f1"}, ids(files))
		assert.Equal(t, [][]string{{"f3", "missing", "f1"}}, collection.calls)
	})

	t.Run("typed lists", func(t *testing.T) {
		collection := newStubCollection("f1", "f2")
		resolve := CreateResolverMultiple("photoIds", collection, nil)

		files, err := resolve(ctx, fieldschema.Document{"photoIds": []string{"f2", "f1"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"f2", "f1"}, ids(files))

		files, err = resolve(ctx, fieldschema.Document{"photoIds": [2]string{"f1", ""}})
		require.NoError(t, err)
		assert.Equal(t, []string{"f1"}, ids(files))
	})

	t.Run("skips non string ids", func(t *testing.T) {
		collection := newStubCollection("f1")
		resolve := CreateResolverMultiple("photoIds", collection, nil)

		files, err := resolve(ctx, fieldschema.Document{"photoIds": []interface{}{42, nil, map[string]interface{}{"_id": "f1"}, "f1", ""}})
		require.NoError(t, err)
		assert.Equal(t, []string{"f1"}, ids(files))
		assert.Equal(t, [][]string{{"f1"}}, collection.calls)
	})

	t.Run("custom resolve id", func(t *testing.T) {
		collection := newStubCollection("f1", "f2")
		resolve := CreateResolverMultiple("photos", collection, fileid.Key("_id"))

		files, err := resolve(ctx, fieldschema.Document{"photos": []interface{}{
			map[string]interface{}{"_id": "f2"},
			map[string]interface{}{"_id": "f1"},
		}})
		require.NoError(t, err)
		assert.Equal(t, []string{"f2", "f1"}, ids(files))
	})

	t.Run("no references skips collection", func(t *testing.T) {
		collection := newStubCollection("f1")
		resolve := CreateResolverMultiple("avatarId", collection, nil)

		for _, document := range []fieldschema.Document{
			{},
			{"avatarId": nil},
			{"avatarId": []interface{}{}},
			{"avatarId": 42},
		} {
			files, err := resolve(ctx, document)
			require.NoError(t, err)
			assert.NotNil(t, files)
			assert.Len(t, files, 0)
		}
		assert.Len(t, collection.calls, 0)
	})

	t.Run("collection errors are returned unchanged", func(t *testing.T) {
		collection := &stubCollection{err: errors.New("storage unavailable")}
		resolve := CreateResolverMultiple("avatarId", collection, nil)

		files, err := resolve(ctx, fieldschema.Document{"avatarId": "f1"})
		assert.Nil(t, files)
		assert.Same(t, collection.err, err)
	})

	t.Run("memory collection", func(t *testing.T) {
		collection := filestore.NewMemoryCollection(nil)
		_, err := collection.LoadJSON([]byte(`[{"_id":"f1","name":"a.png"},{"_id":"f2","name":"b.png"}]`))
		require.NoError(t, err)
		resolve := CreateResolverMultiple("photoIds", collection, nil)

		files, err := resolve(ctx, fieldschema.Document{"photoIds": []interface{}{"f2", "f1"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"f2", "f1"}, ids(files))
		assert.Equal(t, "b.png", files[0].Name)
	})

	t.Run("logs resolution", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logger := abstractlogger.NewZapLogger(zap.New(core), abstractlogger.DebugLevel)
		resolve := CreateResolverMultiple("avatarId", newStubCollection("f1"), nil, WithLogger(logger))

		_, err := resolve(ctx, fieldschema.Document{"avatarId": "f1"})
		require.NoError(t, err)

		entries := logs.FilterMessage("fileresolve.ResolverMultiple").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "avatarId", entries[0].ContextMap()["field"])
	})
}

func TestCreateResolverSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("first file", func(t *testing.T) {
		resolve := CreateResolverSingle("photoIds", newStubCollection("f1", "f2"), fileid.Default)

		file, err := resolve(ctx, fieldschema.Document{"photoIds": []interface{}{"f2", "f1"}})
		require.NoError(t, err)
		require.NotNil(t, file)
		assert.Equal(t, "f2", file.ID)
	})

	t.Run("no file", func(t *testing.T) {
		resolve := CreateResolverSingle("avatarId", newStubCollection("f1"), nil)

		file, err := resolve(ctx, fieldschema.Document{"avatarId": "unknown"})
		require.NoError(t, err)
		assert.Nil(t, file)

		file, err = resolve(ctx, fieldschema.Document{})
		require.NoError(t, err)
		assert.Nil(t, file)
	})

	t.Run("errors are returned unchanged", func(t *testing.T) {
		collection := &stubCollection{err: errors.New("storage unavailable")}
		resolve := CreateResolverSingle("avatarId", collection, nil)

		file, err := resolve(ctx, fieldschema.Document{"avatarId": "f1"})
		assert.Nil(t, file)
		assert.Same(t, collection.err, err)
	})
}

func TestSingle(t *testing.T) {
	ctx := context.Background()
	resolverReturning := func(files []*filestore.File, err error) Resolver {
		return func(context.Context, fieldschema.Document) ([]*filestore.File, error) {
			return files, err
		}
	}

	t.Run("empty list yields nil", func(t *testing.T) {
		for _, files := range [][]*filestore.File{nil, {}} {
			file, err := Single(resolverReturning(files, nil))(ctx, fieldschema.Document{"avatarId": "f1"})
			require.NoError(t, err)
			assert.Nil(t, file)
		}
	})

	t.Run("first element for every list length", func(t *testing.T) {
		all := []*filestore.File{{ID: "f1"}, {ID: "f2"}, {ID: "f3"}}
		for length := 1; length <= len(all); length++ {
			file, err := Single(resolverReturning(all[:length], nil))(ctx, fieldschema.Document{})
			require.NoError(t, err)
			assert.Same(t, all[0], file)
		}
	})

	t.Run("propagates failure", func(t *testing.T) {
		failure := errors.New("resolve failed")
		file, err := Single(resolverReturning([]*filestore.File{{ID: "f1"}}, failure))(ctx, fieldschema.Document{})
		assert.Nil(t, file)
		assert.Same(t, failure, err)
	})

	t.Run("passes document and context through", func(t *testing.T) {
		type ctxKey struct{}
		document := fieldschema.Document{"avatarId": "f1"}
		var (
			seenDocument fieldschema.Document
			seenValue    interface{}
		)
		resolver := func(ctx context.Context, d fieldschema.Document) ([]*filestore.File, error) {
			seenDocument = d
			seenValue = ctx.Value(ctxKey{})
			return nil, nil
		}

		_, err := Single(resolver)(context.WithValue(ctx, ctxKey{}, "value"), document)
		require.NoError(t, err)
		assert.Equal(t, document, seenDocument)
		assert.Equal(t, "value", seenValue)
	})
}
