package mcpserver

// EmbedFormatContract describes the location-identifier and embed format
// the engine reads and writes, for LLM consumers driving the tools.
const EmbedFormatContract = `# Ehwaz Embed Format Contract

Documents reference binary assets through Markdown image embeds:

` + "```" + `markdown
![description](file:///Users/alice/Pictures/cat.png)
![description](attachments/cat.png)
![[cat.png]]
` + "```" + `

## Location identifiers

- A location identifier is either a decoded absolute path, a percent-
  encoded ` + "`" + `file://` + "`" + ` URI, or a remote URL.
- macOS identifiers use the two-slash scheme form: ` + "`" + `file:///Users/...` + "`" + `
  (the path's own leading slash supplies the third slash).
- Windows identifiers use the triple-slash form with a drive letter whose
  colon is never percent-encoded: ` + "`" + `file:///C:/Users/...` + "`" + `.
- Path segments are percent-encoded independently; separators survive.

## Computer profiles

- A profile is a (platform, username, sub-path) identity registered per
  machine the vault is used from. Platform is ` + "`" + `macos` + "`" + ` or ` + "`" + `windows` + "`" + `.
- Paths produced by a foreign profile are rewritten into the live
  computer's convention when a document is converted. Unrecognized paths
  are left untouched.
- Windows rewrite targets are always anchored to drive C:.

## Rules for tools

1. Vault document paths are relative, forward-slash, ending in ` + "`" + `.md` + "`" + `.
2. Asset paths passed to find_references are vault-relative
   (e.g. ` + "`" + `attachments/cat.png` + "`" + `).
3. convert_document mutates the document in place; run it once per
   document, repeated runs convert nothing further.
`
