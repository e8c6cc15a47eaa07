package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedlab/snsbox/internal/domain"
	"github.com/feedlab/snsbox/internal/faults"
)

func TestCreatePostReturnsCreatedPost(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})

	rec := env.do(t, http.MethodPost, "/api/posts", map[string]string{"text": "hello world"})
	require.Equal(t, http.StatusCreated, rec.Code)

	post := decodeJSON[domain.Post](t, rec)
	assert.Equal(t, "p_1", post.ID)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, domain.LocalUserID, post.Author.ID)
	assert.Equal(t, 0, post.LikeCount)
	assert.False(t, post.LikedByMe)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostTrimsWhitespace(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})

	rec := env.do(t, http.MethodPost, "/api/posts", map[string]string{"text": "  padded  "})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "padded", decodeJSON[domain.Post](t, rec).Text)
}

func TestCreatePostRejectsBadText(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})

	for name, text := range map[string]string{
		"empty":          "",
		"whitespaceOnly": "   \n\t  ",
		"tooLong":        strings.Repeat("x", 141),
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/posts", map[string]string{"text": text})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, domain.CodeBadRequest, decodeJSON[apiError](t, rec).Code)
		})
	}

	// Nothing was stored.
	assert.Empty(t, env.store.GetPage(1, pageSize).Items)
}

func TestCreatePostAcceptsMaxLengthText(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})

	rec := env.do(t, http.MethodPost, "/api/posts",
		map[string]string{"text": strings.Repeat("x", 140)})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreatePostRejectsInvalidJSON(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})

	rec := env.do(t, http.MethodPost, "/api/posts", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.CodeBadRequest, decodeJSON[apiError](t, rec).Code)
}

func TestGetPostsPaginatesNewestFirst(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})
	author := domain.DefaultLocalUser()
	for i := 1; i <= 35; i++ {
		env.store.AddPost(author, fmt.Sprintf("post %d", i), "")
	}

	rec := env.do(t, http.MethodGet, "/api/posts?page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeJSON[domain.Page](t, rec)
	require.Len(t, first.Items, 20)
	assert.Equal(t, "post 35", first.Items[0].Text)
	require.NotNil(t, first.NextPage)
	assert.Equal(t, 2, *first.NextPage)

	rec = env.do(t, http.MethodGet, "/api/posts?page=2", nil)
	second := decodeJSON[domain.Page](t, rec)
	require.Len(t, second.Items, 15)
	assert.Equal(t, "post 1", second.Items[len(second.Items)-1].Text)
	assert.Nil(t, second.NextPage)
}

func TestGetPostsEmptyTimelineEncodesEmptyArray(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})

	rec := env.do(t, http.MethodGet, "/api/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
	assert.Contains(t, rec.Body.String(), `"nextPage":null`)
}

func TestGetPostsDefaultsMalformedPageToOne(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})
	env.store.AddPost(domain.DefaultLocalUser(), "only", "")

	for _, q := range []string{"", "?page=abc", "?page=0", "?page=-3"} {
		rec := env.do(t, http.MethodGet, "/api/posts"+q, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decodeJSON[domain.Page](t, rec)
		assert.Len(t, page.Items, 1, "query %q", q)
	}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})
	post := env.store.AddPost(domain.DefaultLocalUser(), "likeable", "")

	rec := env.do(t, http.MethodPost, "/api/posts/"+post.ID+"/like", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	liked := decodeJSON[domain.Post](t, rec)
	assert.True(t, liked.LikedByMe)
	assert.Equal(t, 1, liked.LikeCount)

	rec = env.do(t, http.MethodPost, "/api/posts/"+post.ID+"/like", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	unliked := decodeJSON[domain.Post](t, rec)
	assert.False(t, unliked.LikedByMe)
	assert.Equal(t, 0, unliked.LikeCount)
}

func TestToggleLikeUnknownPostReturns404(t *testing.T) {
	env := newTestEnv(t, faults.RandSampler{})

	rec := env.do(t, http.MethodPost, "/api/posts/p_999/like", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.CodeNotFound, decodeJSON[apiError](t, rec).Code)
}
