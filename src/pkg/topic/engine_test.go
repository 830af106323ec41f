package topic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyfocus/local-app/src/pkg/model"
)

var t0 = time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)

func node(id float64, title string, subs ...model.LearningTopic) model.LearningTopic {
	if subs == nil {
		subs = []model.LearningTopic{}
	}
	return model.LearningTopic{
		ID:             id,
		Title:          title,
		ReferenceLinks: []model.ReferenceLink{},
		Subtopics:      subs,
		CreatedAt:      t0,
		UpdatedAt:      t0,
	}
}

func TestCreate(t *testing.T) {
	_, ok := Create("  ", t0)
	assert.False(t, ok)

	tp, ok := Create(" Go generics ", t0)
	require.True(t, ok)
	assert.Equal(t, "Go generics", tp.Title)
	assert.Empty(t, tp.Notes)
	assert.Empty(t, tp.ReferenceLinks)
	assert.Empty(t, tp.Subtopics)
	assert.False(t, tp.BlogPost.Written)
	assert.Equal(t, tp.CreatedAt, tp.UpdatedAt)
}

func TestAddSubtopic_ExpandsAndStampsParent(t *testing.T) {
	forest := []model.LearningTopic{node(1, "root", node(2, "child"))}
	later := t0.Add(time.Hour)

	out := AddSubtopic(forest, 2, "grandchild", later)

	child := out[0].Subtopics[0]
	require.Len(t, child.Subtopics, 1)
	assert.True(t, child.Expanded)
	assert.Equal(t, later, child.UpdatedAt)
	assert.Equal(t, t0, out[0].UpdatedAt, "ancestors are not stamped")
	assert.Empty(t, forest[0].Subtopics[0].Subtopics, "input must not change")
}

func TestAddSubtopic_BlankOrMissingIsNoop(t *testing.T) {
	forest := []model.LearningTopic{node(1, "root")}
	assert.Equal(t, forest, AddSubtopic(forest, 1, " ", t0))
	assert.Equal(t, forest, AddSubtopic(forest, 99, "x", t0))
}

func TestUpdateFields(t *testing.T) {
	forest := []model.LearningTopic{node(1, "old")}
	later := t0.Add(time.Minute)

	out := UpdateTitle(forest, 1, "new", later)
	assert.Equal(t, "new", out[0].Title)
	assert.Equal(t, later, out[0].UpdatedAt)

	assert.Equal(t, forest, UpdateTitle(forest, 1, "   ", later))

	out = UpdateNotes(forest, 1, "", later)
	assert.Equal(t, "old", out[0].Title)
	assert.Equal(t, later, out[0].UpdatedAt)

	title, notes := "  ", "read chapter 3"
	out = UpdateFields(forest, 1, Patch{Title: &title, Notes: &notes}, later)
	assert.Equal(t, "old", out[0].Title)
	assert.Equal(t, "read chapter 3", out[0].Notes)
}

func TestDelete_RemovesSubtree(t *testing.T) {
	forest := []model.LearningTopic{node(1, "a", node(2, "b", node(3, "c"))), node(4, "d")}
	out := Delete(forest, 2)
	assert.Equal(t, 2, CountAll(out))
	assert.Equal(t, 4, CountAll(forest))
	assert.Equal(t, forest, Delete(forest, 42))
}

func TestToggleExpansion_DoesNotStamp(t *testing.T) {
	forest := []model.LearningTopic{node(1, "a", node(2, "b"))}
	out := ToggleExpansion(forest, 1)
	assert.True(t, out[0].Expanded)
	assert.Equal(t, t0, out[0].UpdatedAt)
}

func TestExpandCollapseAll(t *testing.T) {
	forest := []model.LearningTopic{node(1, "a", node(2, "b", node(3, "c"))), node(4, "d")}
	assert.False(t, AreAllExpanded(forest))

	expanded := ExpandAll(forest)
	assert.True(t, AreAllExpanded(expanded))
	assert.True(t, expanded[0].Subtopics[0].Expanded)
	assert.False(t, expanded[1].Expanded, "leaves stay collapsed")

	collapsed := CollapseAll(expanded)
	assert.False(t, AreAllExpanded(collapsed))
	assert.False(t, collapsed[0].Expanded)

	leaves := []model.LearningTopic{node(5, "x")}
	assert.False(t, AreAllExpanded(ExpandAll(leaves)))
	assert.False(t, AreAllExpanded(nil))
}

func TestBlogPost(t *testing.T) {
	forest := []model.LearningTopic{node(1, "a", node(2, "b"))}

	out := ToggleBlogPost(forest, 2, t0)
	assert.True(t, out[0].Subtopics[0].BlogPost.Written)
	assert.Equal(t, 1, CountBlogPosts(out))

	out = ToggleBlogPost(out, 2, t0)
	assert.False(t, out[0].Subtopics[0].BlogPost.Written)

	out = SetBlogPostURL(forest, 1, " https://blog.example/post ", t0)
	assert.Equal(t, model.BlogPost{Written: true, URL: "https://blog.example/post"}, out[0].BlogPost)
}

func TestReferenceLinks(t *testing.T) {
	forest := []model.LearningTopic{node(1, "a")}
	later := t0.Add(time.Hour)

	out := AddReferenceLink(forest, 1, "https://go.dev", later)
	require.Len(t, out[0].ReferenceLinks, 1)
	assert.Equal(t, later, out[0].UpdatedAt)
	assert.Empty(t, forest[0].ReferenceLinks)
	assert.Equal(t, forest, AddReferenceLink(forest, 1, " ", later))

	linkID := out[0].ReferenceLinks[0].ID
	out = UpdateReferenceLink(out, 1, linkID, "https://pkg.go.dev", later)
	assert.Equal(t, "https://pkg.go.dev", out[0].ReferenceLinks[0].URL)

	out = AddReferenceLink(out, 1, "https://example.com", later)
	assert.Equal(t, 2, CountReferenceLinks(out))

	out = DeleteReferenceLink(out, 1, linkID, later)
	require.Len(t, out[0].ReferenceLinks, 1)
	assert.Equal(t, "https://example.com", out[0].ReferenceLinks[0].URL)
}

func TestClone_IsDeep(t *testing.T) {
	forest := []model.LearningTopic{node(1, "a", node(2, "b"))}
	forest[0].ReferenceLinks = []model.ReferenceLink{{ID: 9, URL: "u"}}

	c := Clone(forest)
	c[0].Subtopics[0].Title = "changed"
	c[0].ReferenceLinks[0].URL = "changed"

	assert.Equal(t, "b", forest[0].Subtopics[0].Title)
	assert.Equal(t, "u", forest[0].ReferenceLinks[0].URL)
}

func TestResolvePath(t *testing.T) {
	forest := []model.LearningTopic{node(1, "a"), node(2, "b", node(3, "c"))}

	tp, err := ResolvePath(forest, "2.1")
	require.NoError(t, err)
	assert.Equal(t, "c", tp.Title)

	_, err = ResolvePath(forest, "3")
	assert.Error(t, err)
	_, err = ResolvePath(forest, "x")
	assert.Error(t, err)
}
