// ABOUTME: Source-link augmentation for assistant replies
// ABOUTME: Appends Markdown citation links unless the reply already carries them

package chat

import "strings"

const sourcesHeader = "For more information, visit:"

// EnhanceWithSources appends a Markdown citation list to an assistant
// reply. The text is returned unchanged when the reply is general chat,
// when there are no source URLs, or when it already contains a
// "For more information" or "visit:" marker. The marker check also makes
// the function idempotent. Inputs are never mutated and URL order is
// preserved.
//
// Link titles come from the parallel titles list, falling back to the
// URL's final path segment, then to "Resource".
func EnhanceWithSources(text string, sourceURLs, sourceTitles []string, isGeneralChat bool) string {
	if isGeneralChat {
		return text
	}
	if len(sourceURLs) == 0 {
		return text
	}
	if strings.Contains(text, "For more information") || strings.Contains(text, "visit:") {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(sourcesHeader)

	for i, url := range sourceURLs {
		title := ""
		if i < len(sourceTitles) {
			title = sourceTitles[i]
		}
		if title == "" {
			title = lastPathSegment(url)
		}
		if title == "" {
			title = "Resource"
		}
		b.WriteString("\n- [")
		b.WriteString(title)
		b.WriteString("](")
		b.WriteString(url)
		b.WriteString(")")
	}

	return b.String()
}

// lastPathSegment returns the text after the final "/", which may be "".
func lastPathSegment(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
