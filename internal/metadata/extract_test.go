package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_OpenGraphTitle(t *testing.T) {
	meta := Extract(`<meta property="og:title" content="X">`, "https://example.com")

	require.NotNil(t, meta.Title)
	assert.Equal(t, "X", *meta.Title)
	assert.Nil(t, meta.Description)
	assert.Nil(t, meta.Image)
	assert.Equal(t, "https://example.com", meta.URL)
}

func TestExtract_NoTags(t *testing.T) {
	for _, doc := range []string{"", "plain text", "<html><body><p>hi</p></body></html>", "<meta <meta content=>"} {
		var meta Metadata
		assert.NotPanics(t, func() { meta = Extract(doc, "https://example.com") })
		assert.Nil(t, meta.Title, doc)
		assert.Nil(t, meta.Description, doc)
		assert.Nil(t, meta.Image, doc)
	}
}

func TestExtract_Priority(t *testing.T) {
	doc := `<html><head>
<title>Generic title</title>
<meta name="description" content="Generic description">
<meta name="twitter:title" content="Twitter title">
<meta name="twitter:description" content="Twitter description">
<meta name="twitter:image" content="https://cdn.example.com/twitter.png">
<meta property="og:title" content="OG title">
<meta property="og:image" content="https://cdn.example.com/og.png">
</head></html>`

	meta := Extract(doc, "https://example.com/post")

	require.NotNil(t, meta.Title)
	require.NotNil(t, meta.Description)
	require.NotNil(t, meta.Image)
	assert.Equal(t, "OG title", *meta.Title)
	assert.Equal(t, "Twitter description", *meta.Description)
	assert.Equal(t, "https://cdn.example.com/og.png", *meta.Image)
}

func TestExtract_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		title string
		desc  string
		image string
	}{
		{
			name:  "title tag and description",
			doc:   "<TITLE>\n  Hello &amp; welcome\n</TITLE><meta name=\"description\" content=\"About us\">",
			title: "Hello & welcome",
			desc:  "About us",
		},
		{
			name:  "reversed attribute order",
			doc:   `<meta content="Reversed" property="og:title"/><meta content='Single quoted' name='twitter:description'>`,
			title: "Reversed",
			desc:  "Single quoted",
		},
		{
			name:  "apostrophe inside double quotes",
			doc:   `<meta property="og:title" content="Bob's page">`,
			title: "Bob's page",
		},
		{
			name:  "empty og value falls through",
			doc:   `<meta property="og:title" content=""><title>Real title</title>`,
			title: "Real title",
		},
		{
			name:  "relative image_src link",
			doc:   `<link rel="image_src" href="/img/cover.jpg">`,
			image: "https://example.com/img/cover.jpg",
		},
		{
			name:  "og:image:url",
			doc:   `<meta property="og:image:url" content="//cdn.example.com/a.png">`,
			image: "https://cdn.example.com/a.png",
		},
		{
			name:  "twitter:image:src",
			doc:   `<meta name="twitter:image:src" content="https://cdn.example.com/t.png">`,
			image: "https://cdn.example.com/t.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := Extract(tt.doc, "https://example.com/articles/1")
			assertField(t, tt.title, meta.Title)
			assertField(t, tt.desc, meta.Description)
			assertField(t, tt.image, meta.Image)
		})
	}
}

func assertField(t *testing.T, want string, got *string) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestExtract_IgnoresPrefixedAttributes(t *testing.T) {
	doc := `<meta property="og:title" data-content="x" content="Real">
<meta data-name="og:description" content="wrong"><meta name="description" content="Right">
<link data-rel="image_src" rel="icon" href="/favicon.ico"><link rel="image_src" data-href="/nope.png" href="/yes.png">`

	meta := Extract(doc, "https://example.com/page")

	require.NotNil(t, meta.Title)
	assert.Equal(t, "Real", *meta.Title)
	require.NotNil(t, meta.Description)
	assert.Equal(t, "Right", *meta.Description)
	require.NotNil(t, meta.Image)
	assert.Equal(t, "https://example.com/yes.png", *meta.Image)
}
