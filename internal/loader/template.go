package loader

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	whitespaceRunPatternConstant             = `\s+`
	flexibleWhitespacePatternConstant        = `\s*`
	identifierPlaceholderPatternConstant     = `[A-Za-z0-9_]+`
	startAnchorPatternTemplateConstant       = "^%s"
	endAnchorPatternTemplateConstant         = "%s$"
	patternCompilationErrorTemplateConstant  = "unable to compile template pattern: %w"
	unexpectedStructureErrorTemplateConstant = "the toolchain generated an unexpected script shape in %s: %s; " +
		"the toolchain was likely updated without a matching cargoport update, and cargoport needs to be " +
		"taught the new shape before it can assemble a loader"
	prefixMismatchReasonConstant  = "the expected prefix did not match"
	suffixMismatchReasonConstant  = "the expected suffix did not match"
	invalidOrderingReasonConstant = "the prefix match overlaps the suffix match"
)

// Anchor selects which end of the subject text a compiled pattern binds to.
type Anchor int

// Supported anchors.
const (
	AnchorStart Anchor = iota
	AnchorEnd
)

// MatchSpan records the start and end offsets of an anchored match.
type MatchSpan struct {
	Start int
	End   int
}

// UnexpectedStructureError reports generated script text that no longer
// matches the expected structural templates, signaling toolchain version skew.
type UnexpectedStructureError struct {
	FilePath string
	Reason   string
}

// Error names the offending file and advises that the wrapper needs updating.
func (unexpected UnexpectedStructureError) Error() string {
	return fmt.Sprintf(unexpectedStructureErrorTemplateConstant, unexpected.FilePath, unexpected.Reason)
}

// Pattern is a compiled structural template anchored to one end of a subject.
type Pattern struct {
	expression     *regexp.Regexp
	anchor         Anchor
	mismatchReason string
}

// CompileTemplate builds a tolerant pattern from literal template text.
// Literal characters match exactly, every whitespace run tolerates arbitrary
// reformatting, and the placeholder token matches any identifier.
func CompileTemplate(templateText string, anchor Anchor) (Pattern, error) {
	escapedTemplate := regexp.QuoteMeta(templateText)
	flexibleTemplate := whitespaceRunExpression.ReplaceAllLiteralString(escapedTemplate, flexibleWhitespacePatternConstant)
	flexibleTemplate = strings.ReplaceAll(flexibleTemplate, placeholderTokenConstant, identifierPlaceholderPatternConstant)

	anchoredTemplate := fmt.Sprintf(startAnchorPatternTemplateConstant, flexibleTemplate)
	mismatchReason := prefixMismatchReasonConstant
	if anchor == AnchorEnd {
		anchoredTemplate = fmt.Sprintf(endAnchorPatternTemplateConstant, flexibleTemplate)
		mismatchReason = suffixMismatchReasonConstant
	}

	compiledExpression, compilationError := regexp.Compile(anchoredTemplate)
	if compilationError != nil {
		return Pattern{}, fmt.Errorf(patternCompilationErrorTemplateConstant, compilationError)
	}

	return Pattern{expression: compiledExpression, anchor: anchor, mismatchReason: mismatchReason}, nil
}

var whitespaceRunExpression = regexp.MustCompile(whitespaceRunPatternConstant)

// Match locates the pattern in subjectText. The anchoring guarantees at most
// one deterministic location; a failed match yields an UnexpectedStructureError
// naming the generated file.
func (pattern Pattern) Match(subjectText string, subjectFilePath string) (MatchSpan, error) {
	matchOffsets := pattern.expression.FindStringIndex(subjectText)
	if matchOffsets == nil {
		return MatchSpan{}, UnexpectedStructureError{FilePath: subjectFilePath, Reason: pattern.mismatchReason}
	}

	return MatchSpan{Start: matchOffsets[0], End: matchOffsets[1]}, nil
}
