// Package templates embeds the pongo2 template sources shipped with the
// notifier service. Email templates live under emails/, report documents
// under reports/.
package templates

import "embed"

//go:embed emails/*.html emails/*.txt reports/*.html
var FS embed.FS
