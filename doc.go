// Package graphqlfiles contains the building blocks for file fields of schema driven documents.
//
// A file field stores the id of an uploaded file, or a list of ids, in a document and
// exposes the resolved file records through GraphQL.
//
// The packages are:
//   - fieldschema: the field schema model and its order sensitive merge
//   - filefield: generation of the schema of a file field
//   - fileid: extraction of file ids from stored values
//   - filestore: file collections, in memory and cached
//   - fileresolve: resolvers expanding stored ids into file records
//   - filesdl: the GraphQL schema surface of file fields
//
// The filefield command in cmd/filefield prints generated schemas and resolves documents against a file fixture.
package graphqlfiles
