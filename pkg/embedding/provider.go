package embedding

// Task types hint the provider how the text will be used. Ollama ignores
// them, but the interface keeps them so providers that care (retrieval vs.
// document embedding) can be swapped in.
const (
	TaskTypeQuery    = "RETRIEVAL_QUERY"
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
)

type EmbeddingResponseEmbedding struct {
	Values []float32
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding
}

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations must return L2-normalized vectors so that dot product
// equals cosine similarity and pgvector cosine distance stays consistent.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
