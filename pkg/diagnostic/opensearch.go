package diagnostic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// DefaultIndex is the OpenSearch index diagnostic records are written to.
const DefaultIndex = "notification-diagnostics"

// IndexSink indexes records in OpenSearch so they can be searched alongside
// the rest of the audit trail.
type IndexSink struct {
	client *opensearch.Client
	index  string
}

// NewIndexSink creates an IndexSink. An empty index selects DefaultIndex.
func NewIndexSink(client *opensearch.Client, index string) *IndexSink {
	if index == "" {
		index = DefaultIndex
	}
	return &IndexSink{client: client, index: index}
}

func (s *IndexSink) Write(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}

	req := opensearchapi.IndexRequest{
		Index:      s.index,
		DocumentID: rec.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrIndexFailed, res.StatusCode, msg)
	}
	return nil
}
