// Package opensearch connects to the OpenSearch cluster where diagnostic
// records are indexed. Diagnostics to OpenSearch are optional: when
// OPENSEARCH_ADDRESSES is empty the dispatcher logs records instead.
package opensearch
