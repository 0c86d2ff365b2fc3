// Package qdrant implements the vectorstore.Backend interface against a
// remote Qdrant instance over gRPC.
//
// Collections use cosine distance. Qdrant reports similarity scores, so
// results are converted to distances (1 - score) before being returned.
// Collection metadata is carried on point payloads since Qdrant has no
// collection-level metadata store.
package qdrant
