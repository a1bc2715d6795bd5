package loader

import (
	"fmt"
	"strings"
)

const (
	missingEntryPointErrorTemplateConstant = "the generated script %s does not define the '%s' entry point; " +
		"the toolchain output cannot be repackaged for the host runtime"
	assembledScriptTemplateConstant = "%s\n%s"
)

// MissingEntryPointError reports a structurally valid payload that lacks the
// required initialization entry point.
type MissingEntryPointError struct {
	FilePath string
}

// Error names the offending file and the missing entry point.
func (missing MissingEntryPointError) Error() string {
	return fmt.Sprintf(missingEntryPointErrorTemplateConstant, missing.FilePath, InitializationEntryPointMarker)
}

// ExtractPayload slices the initialization payload between the prefix and
// suffix matches and validates that it defines the entry point.
func ExtractPayload(subjectText string, prefixSpan MatchSpan, suffixSpan MatchSpan, subjectFilePath string) (string, error) {
	if prefixSpan.End > suffixSpan.Start {
		return "", UnexpectedStructureError{FilePath: subjectFilePath, Reason: invalidOrderingReasonConstant}
	}

	payload := subjectText[prefixSpan.End:suffixSpan.Start]
	if !strings.Contains(payload, InitializationEntryPointMarker) {
		return "", MissingEntryPointError{FilePath: subjectFilePath}
	}

	return payload, nil
}

// AssembleHostScript appends the fixed synchronous invocation snippet to the
// extracted payload, producing the final loader for the host runtime.
func AssembleHostScript(payload string) string {
	return fmt.Sprintf(assembledScriptTemplateConstant, payload, initializationCallSnippetConstant)
}

// RewriteGeneratedScript validates generated script text against the expected
// prefix and suffix templates, extracts the initialization payload, and
// assembles the host loader script.
func RewriteGeneratedScript(subjectText string, subjectFilePath string) (string, error) {
	prefixPattern, prefixCompilationError := CompileTemplate(generatedScriptPrefixTemplateConstant, AnchorStart)
	if prefixCompilationError != nil {
		return "", prefixCompilationError
	}

	suffixPattern, suffixCompilationError := CompileTemplate(generatedScriptSuffixTemplateConstant, AnchorEnd)
	if suffixCompilationError != nil {
		return "", suffixCompilationError
	}

	prefixSpan, prefixMatchError := prefixPattern.Match(subjectText, subjectFilePath)
	if prefixMatchError != nil {
		return "", prefixMatchError
	}

	suffixSpan, suffixMatchError := suffixPattern.Match(subjectText, subjectFilePath)
	if suffixMatchError != nil {
		return "", suffixMatchError
	}

	payload, extractionError := ExtractPayload(subjectText, prefixSpan, suffixSpan, subjectFilePath)
	if extractionError != nil {
		return "", extractionError
	}

	return AssembleHostScript(payload), nil
}
