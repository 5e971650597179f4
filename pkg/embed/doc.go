// Package embed renders the script that lets third-party pages surface the
// hosted research application inside an iframe.
//
// A host page includes a single script tag pointing at the gateway's
// /embed.js. The served script installs the iframe next to the tag (or into
// an explicit data-mount target), manages its sizing, and forwards a
// configured backend URL into the embedded application through the same
// well-known query parameter the endpoint resolver reads.
package embed
