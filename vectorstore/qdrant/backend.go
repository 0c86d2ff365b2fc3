// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qdrant

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/poiesic/structor/vectorstore"
)

// documentKey is the payload field carrying the item's source document.
const documentKey = "__document"

// Backend implements vectorstore.Backend against a remote Qdrant instance
// over gRPC.
type Backend struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	dims        uint64
	logger      *slog.Logger
}

var _ vectorstore.Backend = (*Backend)(nil)

// OpenBackend connects to Qdrant at the given gRPC address. dims is the
// vector dimensionality used when creating collections.
func OpenBackend(addr string, dims int) (*Backend, error) {
	if dims < 1 {
		return nil, fmt.Errorf("invalid vector dimensionality %d", dims)
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dialing qdrant %s: %w", addr, err)
	}
	return &Backend{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		dims:        uint64(dims),
		logger:      slog.Default().With("component", "qdrant"),
	}, nil
}

// Close closes the underlying gRPC connection.
func (b *Backend) Close() error {
	return b.conn.Close()
}

// CreateCollection creates a cosine-distance collection. Qdrant has no
// collection-level metadata; the metadata argument travels on point
// payloads instead, so it is ignored here.
func (b *Backend) CreateCollection(ctx context.Context, name string, metadata map[string]any) error {
	exists, err := b.HasCollection(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", vectorstore.ErrCollectionExists, name)
	}

	_, err = b.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: name,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     b.dims,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", name, err)
	}
	return nil
}

// DeleteCollection removes a collection. Returns false if it did not exist.
func (b *Backend) DeleteCollection(ctx context.Context, name string) (bool, error) {
	exists, err := b.HasCollection(ctx, name)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	_, err = b.collections.Delete(ctx, &pb.DeleteCollection{CollectionName: name})
	if err != nil {
		return false, fmt.Errorf("deleting collection %s: %w", name, err)
	}
	return true, nil
}

// HasCollection reports whether the collection exists.
func (b *Backend) HasCollection(ctx context.Context, name string) (bool, error) {
	list, err := b.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return false, fmt.Errorf("listing collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == name {
			return true, nil
		}
	}
	return false, nil
}

// Upsert writes items as points. The document text rides on the payload
// alongside the item metadata.
func (b *Backend) Upsert(ctx context.Context, name string, items []vectorstore.Item) error {
	if len(items) == 0 {
		return nil
	}

	exists, err := b.HasCollection(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", vectorstore.ErrCollectionNotFound, name)
	}

	points := make([]*pb.PointStruct, len(items))
	for i, item := range items {
		payload := toPayload(item.Metadata)
		payload[documentKey] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: item.Document}}

		points[i] = &pb.PointStruct{
			Id:      pointID(item.ID),
			Vectors: &pb.Vectors{VectorsOptions: &pb.Vectors_Vector{Vector: &pb.Vector{Data: item.Vector}}},
			Payload: payload,
		}
	}

	wait := true
	_, err = b.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: name,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting %d points: %w", len(items), err)
	}
	return nil
}

// Query performs k-NN search and converts similarity scores to distances.
func (b *Backend) Query(ctx context.Context, name string, vector []float32, k int) ([]vectorstore.Match, error) {
	exists, err := b.HasCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", vectorstore.ErrCollectionNotFound, name)
	}

	resp, err := b.points.Search(ctx, &pb.SearchPoints{
		CollectionName: name,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("searching collection %s: %w", name, err)
	}

	matches := make([]vectorstore.Match, 0, len(resp.GetResult()))
	for _, r := range resp.GetResult() {
		payload := r.GetPayload()
		document := payload[documentKey].GetStringValue()
		delete(payload, documentKey)

		matches = append(matches, vectorstore.Match{
			Document: document,
			Metadata: fromPayload(payload),
			Distance: 1 - float64(r.GetScore()),
		})
	}
	return matches, nil
}

// pointID builds a Qdrant point ID. Item IDs are decimal uint64 strings;
// anything else is passed through as a UUID-kind ID.
func pointID(id string) *pb.PointId {
	if num, err := strconv.ParseUint(id, 10, 64); err == nil {
		return &pb.PointId{PointIdOptions: &pb.PointId_Num{Num: num}}
	}
	return &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: id}}
}
