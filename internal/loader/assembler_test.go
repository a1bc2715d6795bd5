package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testMarkerlessPayloadConstant = "function bootstrap() { return {}; }"
	testExpectedSnippetConstant   = "\n__initialize(new WebAssembly.Module(require('compiled')), false);\n"
)

func TestExtractPayloadRejectsInvalidSpanOrdering(testInstance *testing.T) {
	subjectText := renderGeneratedScript(testCrateIdentifierConstant, "", testPayloadConstant)

	prefixSpan := MatchSpan{Start: 0, End: 40}
	suffixSpan := MatchSpan{Start: 20, End: len(subjectText)}

	_, extractionError := ExtractPayload(subjectText, prefixSpan, suffixSpan, testGeneratedFileNameConstant)
	require.Error(testInstance, extractionError)
	require.IsType(testInstance, UnexpectedStructureError{}, extractionError)
}

func TestExtractPayloadRequiresEntryPointMarker(testInstance *testing.T) {
	subjectText := renderGeneratedScript(testCrateIdentifierConstant, "", testMarkerlessPayloadConstant)

	prefixPattern, prefixCompilationError := CompileTemplate(generatedScriptPrefixTemplateConstant, AnchorStart)
	require.NoError(testInstance, prefixCompilationError)
	suffixPattern, suffixCompilationError := CompileTemplate(generatedScriptSuffixTemplateConstant, AnchorEnd)
	require.NoError(testInstance, suffixCompilationError)

	prefixSpan, prefixMatchError := prefixPattern.Match(subjectText, testGeneratedFileNameConstant)
	require.NoError(testInstance, prefixMatchError)
	suffixSpan, suffixMatchError := suffixPattern.Match(subjectText, testGeneratedFileNameConstant)
	require.NoError(testInstance, suffixMatchError)

	_, extractionError := ExtractPayload(subjectText, prefixSpan, suffixSpan, testGeneratedFileNameConstant)
	require.Error(testInstance, extractionError)
	require.IsType(testInstance, MissingEntryPointError{}, extractionError)
	require.Contains(testInstance, extractionError.Error(), testGeneratedFileNameConstant)
	require.Contains(testInstance, extractionError.Error(), InitializationEntryPointMarker)
}

func TestAssembleHostScriptAppendsSynchronousInvocation(testInstance *testing.T) {
	assembledScript := AssembleHostScript(testPayloadConstant)

	require.True(testInstance, strings.HasPrefix(assembledScript, testPayloadConstant))
	require.Equal(testInstance, testPayloadConstant+"\n"+testExpectedSnippetConstant, assembledScript)
}

func TestRewriteGeneratedScriptEndToEnd(testInstance *testing.T) {
	subjectText := renderGeneratedScript(testCrateIdentifierConstant, "\r\n ", testPayloadConstant)

	assembledScript, rewriteError := RewriteGeneratedScript(subjectText, testGeneratedFileNameConstant)
	require.NoError(testInstance, rewriteError)
	require.Equal(testInstance, testPayloadConstant+"\n"+testExpectedSnippetConstant, assembledScript)
}

func TestRewriteGeneratedScriptFailsClosedOnAlteredSuffix(testInstance *testing.T) {
	subjectText := renderGeneratedScript(testCrateIdentifierConstant, "", testPayloadConstant)
	subjectText = strings.Replace(subjectText, "fetch(", "download(", 1)

	_, rewriteError := RewriteGeneratedScript(subjectText, testGeneratedFileNameConstant)
	require.Error(testInstance, rewriteError)
	require.IsType(testInstance, UnexpectedStructureError{}, rewriteError)
}
