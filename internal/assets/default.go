package assets

// DefaultCSS is the hardcoded stylesheet used when no theme is requested or
// a named theme cannot be found anywhere.
const DefaultCSS = `body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif;
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 2rem;
    color: #24292e;
}
.markdown-body { box-sizing: border-box; }
h1, h2, h3, h4, h5, h6 { margin-top: 24px; margin-bottom: 16px; font-weight: 600; }
h1 { font-size: 2em; border-bottom: 1px solid #eaecef; padding-bottom: 0.3em; }
h2 { font-size: 1.5em; border-bottom: 1px solid #eaecef; padding-bottom: 0.3em; }
code { background-color: rgba(27, 31, 35, 0.05); padding: 0.2em 0.4em; border-radius: 3px; font-size: 85%; }
pre { background-color: #f6f8fa; padding: 16px; overflow: auto; border-radius: 6px; }
pre code { background: none; padding: 0; }
blockquote { margin: 0; padding: 0 1em; color: #6a737d; border-left: 0.25em solid #dfe2e5; }
table { border-collapse: collapse; width: 100%; }
th, td { padding: 6px 13px; border: 1px solid #dfe2e5; }
tr:nth-child(2n) { background-color: #f6f8fa; }
img { max-width: 100%; height: auto; }
a { color: #0366d6; text-decoration: none; }
a:hover { text-decoration: underline; }
mark { background-color: #fff8c5; padding: 0.1em 0.2em; }
del { color: #6a737d; }
/* chroma syntax highlighting (classes emitted by the code renderer) */
.chroma { background-color: #f6f8fa; }
.chroma .k, .chroma .kd, .chroma .kn { color: #d73a49; }
.chroma .s, .chroma .s1, .chroma .s2 { color: #032f62; }
.chroma .c, .chroma .c1, .chroma .cm { color: #6a737d; font-style: italic; }
.chroma .nf { color: #6f42c1; }
.chroma .m, .chroma .mi, .chroma .mf { color: #005cc5; }
`
