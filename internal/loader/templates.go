package loader

// The template constants below encode the entire contract with the external
// cargo-web toolchain and the host runtime. They are kept in one place so a
// version bump upstream has exactly one spot to update.

// placeholderTokenConstant marks identifier positions in the templates that
// vary per crate; it matches one or more identifier-safe characters.
const placeholderTokenConstant = "XXX"

// InitializationEntryPointMarker is the well-known global initialization
// function the extracted payload must define.
// Its signature is 'function __initialize( __wasm_module, __load_asynchronously )'.
const InitializationEntryPointMarker = "__initialize"

// initializationCallSnippetConstant invokes the entry point with a
// synchronously-obtained module handle and a non-asynchronous load flag.
const initializationCallSnippetConstant = `
__initialize(new WebAssembly.Module(require('compiled')), false);
`

// generatedScriptPrefixTemplateConstant is the environment-detection preamble
// cargo-web emits before the initialization payload.
const generatedScriptPrefixTemplateConstant = `"use strict";

if( typeof Rust === "undefined" ) {
    var Rust = {};
}

(function( root, factory ) {
    if( typeof define === "function" && define.amd ) {
        define( [], factory );
    } else if( typeof module === "object" && module.exports ) {
        module.exports = factory();
    } else {
        Rust.XXX = factory();
    }
}( this, function() {
    `

// generatedScriptSuffixTemplateConstant is the bootstrap epilogue cargo-web
// emits after the initialization payload, covering both the Node filesystem
// branch and the browser fetch branch.
const generatedScriptSuffixTemplateConstant = `


    if( typeof window === "undefined" ) {
        const fs = require( "fs" );
        const path = require( "path" );
        const wasm_path = path.join( __dirname, "XXX.wasm" );
        const buffer = fs.readFileSync( wasm_path );
        const mod = new WebAssembly.Module( buffer );

        return __initialize( mod, false );
    } else {
        return fetch( "XXX.wasm" )
            .then( response => response.arrayBuffer() )
            .then( bytes => WebAssembly.compile( bytes ) )
            .then( mod => __initialize( mod, true ) );
    }
}));
`
