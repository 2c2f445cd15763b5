package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links := ExtractLinks([]byte("See [features](/platform/features) for details."))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "/platform/features", links[0].Destination)
}

func TestExtractLinks_ImageLink(t *testing.T) {
	links := ExtractLinks([]byte("![Architecture](/images/architecture.png)"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindImage, links[0].Kind)
}

func TestExtractLinks_AutoLink(t *testing.T) {
	links := ExtractLinks([]byte("<https://example.com/path>"))
	require.Len(t, links, 1)
	require.Equal(t, LinkKindAuto, links[0].Kind)
	require.Equal(t, "https://example.com/path", links[0].Destination)
}

func TestExtractLinks_ReferenceLinkUsageAndDefinition(t *testing.T) {
	links := ExtractLinks([]byte("See [roadmap][ref].\n\n[ref]: /business/roadmap\n"))
	require.Len(t, links, 2)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, "/business/roadmap", links[0].Destination)
	require.Equal(t, LinkKindReferenceDefinition, links[1].Kind)
}

func TestExtractLinks_SkipsInlineCodeAndCodeBlocks(t *testing.T) {
	src := []byte("" +
		"Inline code: `[Link](./ignored-inline.md)`\n" +
		"\n" +
		"```\n" +
		"[Link](./ignored-fence.md)\n" +
		"```\n" +
		"\n" +
		"Real: [OK](./real.md)\n")

	links := ExtractLinks(src)
	require.Len(t, links, 1)
	require.Equal(t, "./real.md", links[0].Destination)
}

func TestIsPageLink(t *testing.T) {
	require.True(t, Link{Kind: LinkKindInline, Destination: "/vision"}.IsPageLink())
	require.True(t, Link{Kind: LinkKindInline, Destination: "./use-cases.md"}.IsPageLink())
	require.True(t, Link{Kind: LinkKindReferenceDefinition, Destination: "/market"}.IsPageLink())
	require.False(t, Link{Kind: LinkKindInline, Destination: "#section"}.IsPageLink())
	require.False(t, Link{Kind: LinkKindInline, Destination: "https://example.com"}.IsPageLink())
	require.False(t, Link{Kind: LinkKindInline, Destination: "mailto:x@example.com"}.IsPageLink())
	require.False(t, Link{Kind: LinkKindImage, Destination: "/images/logo.png"}.IsPageLink())
}
