package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteroots/schema-sitemap/internal/models"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
	<title>Widget | Acme Store</title>
	<meta property="og:title" content="Widget" />
	<meta name="description" content="The finest widget money can buy." />
	<meta name="author" content="Jane Doe" />
	<meta property="og:locale" content="en_US" />
	<meta property="og:image" content="https://acme.example/widget.jpg" />
	<meta property="og:type" content="product" />
</head>
<body><h1>Widget</h1></body>
</html>`

func TestParsePage(t *testing.T) {
	parsed, err := ParsePage(samplePage)
	require.NoError(t, err)

	assert.Equal(t, "Widget", parsed.Title)
	assert.Equal(t, "The finest widget money can buy.", parsed.Description)
	assert.Equal(t, "Jane Doe", parsed.Author)
	assert.Equal(t, "en_US", parsed.Locale)
	assert.Equal(t, "https://acme.example/widget.jpg", parsed.ImageURL)
	assert.Equal(t, "product", parsed.OGType)
}

func TestParsePageFallsBackToTitleTag(t *testing.T) {
	parsed, err := ParsePage(`<html><head><title>Plain Page</title></head><body></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Plain Page", parsed.Title)
	assert.Empty(t, parsed.Description)
}

func TestKindFromOGType(t *testing.T) {
	assert.Equal(t, models.KindPost, kindFromOGType("article", models.KindPage))
	assert.Equal(t, models.KindProduct, kindFromOGType("product", models.KindPage))
	assert.Equal(t, models.KindPage, kindFromOGType("website", models.KindCustom))
	assert.Equal(t, models.KindCustom, kindFromOGType("music.album", models.KindCustom))
	assert.Equal(t, models.KindPage, kindFromOGType("", models.KindPage))
}

func TestSlugFromURL(t *testing.T) {
	assert.Equal(t, "widget", slugFromURL("https://acme.example/product/widget/"))
	assert.Equal(t, "hello", slugFromURL("https://acme.example/hello"))
	assert.Equal(t, "", slugFromURL("https://acme.example/"))
}
