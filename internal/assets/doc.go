// Package assets provides the stylesheet and HTML document shell used to
// wrap converted Markdown before it is handed to the browser.
//
// Both files are embedded at compile time:
//
//	styles/
//	└── document.css     # typography, code, tables, blockquotes, images
//	templates/
//	└── document.html    # html/template shell with Lang, Title, CSS, Content
//
// Asset names are validated before lookup so a caller-supplied name can never
// escape the embedded directories.
package assets
