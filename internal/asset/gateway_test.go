package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway() *Gateway {
	return &Gateway{
		endpoint: "assets.test:9000",
		bucket:   "vidtube-media",
		useSSL:   false,
	}
}

func TestObjectFromURL(t *testing.T) {
	g := testGateway()

	obj, err := g.objectFromURL("http://assets.test:9000/vidtube-media/abc123.mp4")
	require.NoError(t, err)
	assert.Equal(t, "abc123.mp4", obj)

	// 对象名可以带路径分隔
	obj, err = g.objectFromURL("http://assets.test:9000/vidtube-media/covers/xyz.jpg")
	require.NoError(t, err)
	assert.Equal(t, "covers/xyz.jpg", obj)
}

func TestObjectFromURLRejectsForeignBucket(t *testing.T) {
	g := testGateway()

	_, err := g.objectFromURL("http://assets.test:9000/other-bucket/abc.mp4")
	assert.Error(t, err)

	_, err = g.objectFromURL("http://assets.test:9000/vidtube-media/")
	assert.Error(t, err)

	_, err = g.objectFromURL("://not-a-url")
	assert.Error(t, err)
}

func TestPublicURLRoundTrip(t *testing.T) {
	g := testGateway()

	url := g.publicURL("clip.mp4")
	assert.Equal(t, "http://assets.test:9000/vidtube-media/clip.mp4", url)

	obj, err := g.objectFromURL(url)
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", obj)

	g.useSSL = true
	assert.Equal(t, "https://assets.test:9000/vidtube-media/secure.mp4", g.publicURL("secure.mp4"))
}
