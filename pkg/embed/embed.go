package embed

import (
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/hoistlabs/hostgate/pkg/resolve"
)

// Well-known identifiers shared between the loader script and host pages.
const (
	// ContainerID is the element id of the wrapper div the loader creates.
	ContainerID = "hostgate-embed"

	// FrameID is the element id of the iframe, used by configure() lookups.
	FrameID = "hostgate-frame"

	// GlobalName is the object the loader exposes on the host page's window.
	GlobalName = "HostgateEmbed"

	// ParamKey is the query parameter the loader appends to the iframe src
	// to hand a backend URL to the embedded application. It matches the
	// resolver's override key so the embedded page picks it up directly.
	ParamKey = resolve.OverrideKey
)

// Loader describes one rendering of the embed script.
type Loader struct {
	// AppURL is the hosted application the iframe points at.
	AppURL string

	// APIURL is an optional backend override propagated into the frame.
	APIURL string
}

// FrameSrc builds the iframe src for the hosted application, appending the
// backend URL under ParamKey when one is set. An empty apiURL leaves appURL
// untouched.
func FrameSrc(appURL, apiURL string) (string, error) {
	u, err := url.Parse(appURL)
	if err != nil {
		return "", fmt.Errorf("parse app url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("app url %q is not absolute", appURL)
	}

	if apiURL != "" {
		q := u.Query()
		q.Set(ParamKey, apiURL)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Script renders the self-installing loader for this configuration. The
// output is a complete JavaScript document ready to serve.
func (l Loader) Script() (string, error) {
	src, err := FrameSrc(l.AppURL, l.APIURL)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	data := scriptData{
		Src:         src,
		ContainerID: ContainerID,
		FrameID:     FrameID,
		GlobalName:  GlobalName,
	}
	if err := loaderTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render loader script: %w", err)
	}
	return b.String(), nil
}

type scriptData struct {
	Src         string
	ContainerID string
	FrameID     string
	GlobalName  string
}

var loaderTemplate = template.Must(template.New("loader").Parse(loaderScript))
