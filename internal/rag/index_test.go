package rag

import (
	"context"
	"testing"

	"ConnexxBot_Backend/internal/llm"
	"ConnexxBot_Backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fitnessChunks = []models.Document{
	{SourceID: "guide", Index: 0, Content: "Squat with your knees tracking over your toes. A deep squat builds legs."},
	{SourceID: "guide", Index: 1, Content: "Run at an easy pace three times a week to build endurance."},
	{SourceID: "guide", Index: 2, Content: "Swim laps to train your whole body with low impact."},
	{SourceID: "blog", Index: 0, Content: "Stretch after every session, it's the athlete's secret."},
}

func TestIndex_SearchBeforeBuild(t *testing.T) {
	ix, err := NewIndex(&keywordEmbedder{}, IndexOptions{})
	require.NoError(t, err)

	_, err = ix.Search(context.Background(), "squat", 2)
	assert.ErrorIs(t, err, ErrIndexNotReady)
	assert.False(t, ix.Ready())
}

func TestIndex_BuildOnceSearchMany(t *testing.T) {
	embedder := &keywordEmbedder{}
	ix, err := NewIndex(embedder, IndexOptions{BatchSize: 3})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ix.Build(ctx, fitnessChunks))
	assert.True(t, ix.Ready())
	assert.Equal(t, 4, ix.Len())

	assert.ErrorIs(t, ix.Build(ctx, fitnessChunks), ErrIndexBuilt)

	docs, err := ix.Search(ctx, "how do I squat properly?", 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Contains(t, docs[0].Content, "deep squat")
	assert.Equal(t, "guide", docs[0].SourceID)
	assert.GreaterOrEqual(t, docs[0].Score, docs[1].Score)

	docs, err = ix.Search(ctx, "swim", 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].Index)

	// 2 배치 적재 + 2 질의
	assert.Equal(t, []llm.EmbedTask{
		llm.TaskRetrievalDocument, llm.TaskRetrievalDocument,
		llm.TaskRetrievalQuery, llm.TaskRetrievalQuery,
	}, embedder.calls)
}

func TestIndex_QuotesInContent(t *testing.T) {
	ix, err := NewIndex(&keywordEmbedder{}, IndexOptions{})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ix.Build(ctx, fitnessChunks[3:]))

	docs, err := ix.Search(ctx, "stretch", 4)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Stretch after every session, it's the athlete's secret.", docs[0].Content)
}

func TestIndexRetriever_PreservesUTF8(t *testing.T) {
	chunks := []models.Document{
		{SourceID: "https://example.com/café", Index: 0, Content: "The agent’s plan — squat first, café later."},
		{SourceID: "한국어-가이드", Index: 1, Content: "한국어 스쿼트 가이드: swim 은 주 2회"},
	}
	ix, err := NewIndex(&keywordEmbedder{}, IndexOptions{})
	require.NoError(t, err)
	require.NoError(t, ix.Build(context.Background(), chunks))

	r := &IndexRetriever{Index: ix, K: 1}
	snippets, err := r.Retrieve(context.Background(), "squat")
	require.NoError(t, err)
	assert.Equal(t, []string{chunks[0].Content}, snippets)

	docs, err := ix.Search(context.Background(), "swim", 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, chunks[1].Content, docs[0].Content)
	assert.Equal(t, "한국어-가이드", docs[0].SourceID)
	assert.Equal(t, 1, docs[0].Index)
}

func TestIndex_FailedBuildCanRetry(t *testing.T) {
	embedder := &keywordEmbedder{fail: errBoom}
	ix, err := NewIndex(embedder, IndexOptions{})
	require.NoError(t, err)

	ctx := context.Background()
	assert.ErrorIs(t, ix.Build(ctx, fitnessChunks), errBoom)
	assert.False(t, ix.Ready())

	embedder.fail = nil
	require.NoError(t, ix.Build(ctx, fitnessChunks))
	assert.True(t, ix.Ready())
}

func TestIndexRetriever_ReturnsContentInOrder(t *testing.T) {
	ix, err := NewIndex(&keywordEmbedder{}, IndexOptions{})
	require.NoError(t, err)
	require.NoError(t, ix.Build(context.Background(), fitnessChunks))

	r := &IndexRetriever{Index: ix, K: 1}
	snippets, err := r.Retrieve(context.Background(), "run")
	require.NoError(t, err)
	assert.Equal(t, []string{fitnessChunks[1].Content}, snippets)
}

func TestPipeline_Run(t *testing.T) {
	ix, err := NewIndex(&keywordEmbedder{}, IndexOptions{})
	require.NoError(t, err)

	p := &Pipeline{
		Loaders: []Loader{
			&staticLoader{err: errBoom},
			&staticLoader{docs: []models.Document{{SourceID: "guide", Content: "Squat daily.\n\nRun weekly."}}},
		},
		Splitter: NewRecursiveSplitter(15, 0),
		Index:    ix,
	}
	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, 2, ix.Len())
}

func TestPipeline_AllSourcesFail(t *testing.T) {
	ix, err := NewIndex(&keywordEmbedder{}, IndexOptions{})
	require.NoError(t, err)

	p := &Pipeline{Loaders: []Loader{&staticLoader{err: errBoom}}, Splitter: NewRecursiveSplitter(100, 0), Index: ix}
	assert.ErrorIs(t, p.Run(context.Background()), errBoom)
	assert.False(t, ix.Ready())
}
