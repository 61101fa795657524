package embed

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_ScriptProvider(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"https://platform.twitter.com/widgets.js", "tweet"},
		{" https://platform.twitter.com/widgets.js ", "tweet"},
		{"//speakerdeck.com/assets/embed.js", "speakerdeck"},
		{"https://bcdn.docswell.com/assets/libs/docswell-embed/docswell-embed.min.js", "docswell"},
		{"https://cpwebassets.codepen.io/assets/embed/ei.js", "codepen"},
		{"https://asciinema.org/a/14.js", "asciinema"},
		{"https://asciinema.org/a/aB3xZ9.js", "asciinema"},
		{"https://asciinema.org/a/14.js?x=1", ""},
		{"https://asciinema.org/a/../evil.js", ""},
		{"https://asciinema.org.evil.example/a/14.js", ""},
		{"http://asciinema.org/a/14.js", ""},
		{"https://platform.twitter.com/widgets.js?x=1", ""},
		{"http://platform.twitter.com/widgets.js", ""},
		{"", ""},
	} {
		p, ok := Default.ScriptProvider(tc.src)
		assert.Equal(t, tc.want != "", ok, "ScriptProvider(%q)", tc.src)
		assert.Equal(t, tc.want, p.Name, "ScriptProvider(%q)", tc.src)
	}
}

func TestRegistry_IframeProvider(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"https://codesandbox.io/embed/x", "codesandbox"},
		{"https://CodeSandbox.io:443/embed/x", "codesandbox"},
		{"//www.youtube.com/embed/abc", "youtube"},
		{"https://www.youtube-nocookie.com/embed/abc", "youtube"},
		{"https://docs.google.com/presentation/d/x/embed", "googleslides"},
		{"https://codesandbox.io:8443/embed/x", ""},
		{"https://user@codesandbox.io/embed/x", ""},
		{"javascript://codesandbox.io/%0aalert(1)", ""},
		{"https://evil.example/codesandbox.io", ""},
		{"https://codesandbox.io.evil.example/", ""},
		{"/embed/x", ""},
	} {
		p, ok := Default.IframeProvider(tc.src)
		assert.Equal(t, tc.want != "", ok, "IframeProvider(%q)", tc.src)
		assert.Equal(t, tc.want, p.Name, "IframeProvider(%q)", tc.src)
	}
}

func TestRegistry_Attributes(t *testing.T) {
	assert.Equal(t, []string{
		"class", "data-id", "data-ratio", "data-src", "data-aspect",
		"data-autoplay", "data-cols", "data-loop", "data-preload", "data-rows",
		"data-size", "data-speed", "data-start-at", "data-theme",
	}, Default.Attributes("script"))
	assert.Equal(t, []string{"allow", "sandbox"}, Default.Attributes("iframe"))
	assert.Nil(t, Default.Attributes("img"))
}

func TestRegistry_FirstClaimWins(t *testing.T) {
	a := Provider{
		Name:           "a",
		IframeHosts:    []string{"example.com"},
		ScriptPatterns: []*regexp.Regexp{regexp.MustCompile(`^https://example\.com/[0-9]+\.js$`)},
	}
	b := Provider{
		Name:        "b",
		IframeHosts: []string{"EXAMPLE.com", "b.example"},
		ScriptURLs:  []string{"https://example.com/1.js"},
	}
	r := NewRegistry(a, b)

	p, _ := r.IframeProvider("https://example.com/")
	assert.Equal(t, "a", p.Name)
	p, _ = r.IframeProvider("https://b.example/")
	assert.Equal(t, "b", p.Name)

	// Exact URLs are checked before patterns.
	p, _ = r.ScriptProvider("https://example.com/1.js")
	assert.Equal(t, "b", p.Name)
	p, _ = r.ScriptProvider("https://example.com/2.js")
	assert.Equal(t, "a", p.Name)

	p.IframeHosts[0] = "changed"
	again, _ := r.IframeProvider("https://example.com/")
	assert.Equal(t, "example.com", again.IframeHosts[0])
}
