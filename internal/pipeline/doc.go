// Package pipeline turns Markdown text into the complete HTML document that is
// loaded into the browser:
//   - Markdown to HTML fragment conversion via Goldmark (GFM, footnotes,
//     chroma syntax highlighting with CSS classes)
//   - wrapping the fragment in the static document shell with its embedded
//     stylesheet (Templater)
//
// PDF rendering is handled by the root md2pdf package. This package never
// touches the browser and has no side effects.
package pipeline
