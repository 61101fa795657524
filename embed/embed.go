// Package embed is the registry of trusted third-party embeds:
// the script URLs, iframe hosts and markup attributes each provider
// needs in order to be recognized.
package embed

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// A Provider describes the markup one embed service produces.
type Provider struct {
	Name string

	// Element is the element carrying the provider's Attributes.
	Element string

	// Attributes are the attribute names the provider's markup
	// carries on Element.
	Attributes []string

	// ScriptURLs are the exact script sources the provider loads.
	ScriptURLs []string

	// ScriptPatterns match script sources that embed an ID, such as
	// one script per recording. Patterns must be anchored at both ends.
	ScriptPatterns []*regexp.Regexp

	// IframeHosts are the hosts the provider serves iframes from.
	IframeHosts []string
}

var (
	CodePen = Provider{
		Name:    "codepen",
		Element: "p",
		Attributes: []string{
			"class",
			"data-slug-hash",
			"data-default-tab",
			"data-height",
			"data-pen-title",
			"data-user",
			"data-embed-version",
			"data-preview",
			"data-theme-id",
		},
		ScriptURLs: []string{
			"https://production-assets.codepen.io/assets/embed/ei.js",
			"https://static.codepen.io/assets/embed/ei.js",
			"https://cpwebassets.codepen.io/assets/embed/ei.js",
			"https://public.codepenassets.com/embed/index.js",
		},
	}

	Tweet = Provider{
		Name:    "tweet",
		Element: "blockquote",
		Attributes: []string{
			"class",
			"data-align",
			"data-cards",
			"data-conversation",
			"data-dnt",
			"data-id",
			"data-lang",
			"data-link-color",
			"data-theme",
			"data-width",
		},
		ScriptURLs: []string{"https://platform.twitter.com/widgets.js"},
	}

	SpeakerDeck = Provider{
		Name:       "speakerdeck",
		Element:    "script",
		Attributes: []string{"class", "data-id", "data-ratio"},
		ScriptURLs: []string{
			"//speakerdeck.com/assets/embed.js",
			"https://speakerdeck.com/assets/embed.js",
		},
	}

	Docswell = Provider{
		Name:       "docswell",
		Element:    "script",
		Attributes: []string{"class", "data-src", "data-aspect"},
		ScriptURLs: []string{
			"https://www.docswell.com/assets/libs/docswell-embed/docswell-embed.min.js",
			"https://bcdn.docswell.com/assets/libs/docswell-embed/docswell-embed.min.js",
		},
	}

	Asciinema = Provider{
		Name:    "asciinema",
		Element: "script",
		Attributes: []string{
			"data-autoplay",
			"data-cols",
			"data-loop",
			"data-preload",
			"data-rows",
			"data-size",
			"data-speed",
			"data-start-at",
			"data-theme",
		},
		ScriptPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^https://asciinema\.org/a/[0-9A-Za-z]+\.js$`),
		},
	}

	CodeSandbox = Provider{
		Name:        "codesandbox",
		Element:     "iframe",
		Attributes:  []string{"allow", "sandbox"},
		IframeHosts: []string{"codesandbox.io"},
	}

	YouTube = Provider{
		Name:        "youtube",
		Element:     "iframe",
		IframeHosts: []string{"www.youtube.com", "www.youtube-nocookie.com"},
	}

	SlideShare = Provider{
		Name:        "slideshare",
		Element:     "iframe",
		IframeHosts: []string{"www.slideshare.net"},
	}

	GoogleSlides = Provider{
		Name:        "googleslides",
		Element:     "iframe",
		IframeHosts: []string{"docs.google.com"},
	}

	Figma = Provider{
		Name:        "figma",
		Element:     "iframe",
		IframeHosts: []string{"www.figma.com", "embed.figma.com"},
	}
)

// Default is the registry of every provider above.
var Default = NewRegistry(
	CodePen,
	Tweet,
	SpeakerDeck,
	Docswell,
	Asciinema,
	CodeSandbox,
	YouTube,
	SlideShare,
	GoogleSlides,
	Figma,
)

// A Registry indexes providers by script URL and iframe host.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	providers []Provider
	scripts   map[string]int
	patterns  []scriptPattern
	hosts     map[string]int
}

type scriptPattern struct {
	re       *regexp.Regexp
	provider int
}

// NewRegistry returns a registry of the given providers.
// When two providers claim the same script URL or host,
// the first one wins.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		scripts: make(map[string]int),
		hosts:   make(map[string]int),
	}
	for _, p := range providers {
		i := len(r.providers)
		r.providers = append(r.providers, clone(p))
		for _, u := range p.ScriptURLs {
			if _, ok := r.scripts[u]; !ok {
				r.scripts[u] = i
			}
		}
		for _, re := range p.ScriptPatterns {
			r.patterns = append(r.patterns, scriptPattern{re, i})
		}
		for _, h := range p.IframeHosts {
			h = strings.ToLower(h)
			if _, ok := r.hosts[h]; !ok {
				r.hosts[h] = i
			}
		}
	}
	return r
}

func clone(p Provider) Provider {
	p.Attributes = slices.Clone(p.Attributes)
	p.ScriptURLs = slices.Clone(p.ScriptURLs)
	p.ScriptPatterns = slices.Clone(p.ScriptPatterns)
	p.IframeHosts = slices.Clone(p.IframeHosts)
	return p
}

// Attributes returns the attribute names providers carry on element,
// without duplicates, in registration order.
func (r *Registry) Attributes(element string) []string {
	var out []string
	for _, p := range r.providers {
		if p.Element != element {
			continue
		}
		for _, a := range p.Attributes {
			if !slices.Contains(out, a) {
				out = append(out, a)
			}
		}
	}
	return out
}

// ScriptProvider returns the provider loading the script at src.
// src must match a registered URL exactly or a registered pattern.
// Exact URLs are checked first; patterns in registration order.
func (r *Registry) ScriptProvider(src string) (Provider, bool) {
	src = strings.TrimSpace(src)
	if i, ok := r.scripts[src]; ok {
		return clone(r.providers[i]), true
	}
	for _, p := range r.patterns {
		if p.re.MatchString(src) {
			return clone(r.providers[p.provider]), true
		}
	}
	return Provider{}, false
}

// IframeProvider returns the provider serving the iframe at src.
// src must be an http(s) or protocol-relative URL on the default
// port of a registered host.
func (r *Registry) IframeProvider(src string) (Provider, bool) {
	host := Host(src)
	if host == "" {
		return Provider{}, false
	}
	i, ok := r.hosts[host]
	if !ok {
		return Provider{}, false
	}
	return clone(r.providers[i]), true
}

// Host returns the lower-cased host of an http(s) or protocol-relative
// URL, or "" if src is not such a URL or names a non-default port.
func Host(src string) string {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil || u.User != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "":
	default:
		return ""
	}
	switch u.Port() {
	case "", "80", "443":
	default:
		return ""
	}
	return strings.ToLower(u.Hostname())
}
