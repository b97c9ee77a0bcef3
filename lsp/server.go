// Package lsp serves definition files over the language server protocol:
// diagnostics from validation, and completion of data types and refs.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/javagen/definition"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "javagen"

var log = commonlog.GetLogger("javagen.lsp")

type document struct {
	content []byte
	names   []string
}

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[string]*document
}

func NewServer(version string) *Server {
	ls := &Server{
		version: version,
		docs:    make(map[string]*document),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{":", " "},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.docs, path)
	ls.mu.Unlock()
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

// update stores the new content of a document and publishes its
// diagnostics. Ref names from the last decodable version are kept so
// completion still works while the document is broken.
func (ls *Server) update(ctx *glsp.Context, uri string, content []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}
	def, problems := check(content)

	ls.mu.Lock()
	doc, ok := ls.docs[path]
	if !ok {
		doc = &document{}
		ls.docs[path] = doc
	}
	doc.content = content
	if def != nil {
		doc.names = def.Names()
	}
	ls.mu.Unlock()

	log.Debugf("%s: %d problems", path, len(problems))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(content, problems),
	})
}

func check(content []byte) (*definition.Definition, []definition.Problem) {
	def, err := definition.Parse(content)
	if err == nil {
		return def, nil
	}
	var verr *definition.ValidationError
	if errors.As(err, &verr) {
		return def, verr.Problems
	}
	return def, []definition.Problem{{Pos: definition.Position{Line: 1, Column: 1}, Message: err.Error()}}
}

// Diagnostics converts problems to LSP diagnostics. Each diagnostic runs
// from the problem's column to the end of its line.
func Diagnostics(content []byte, problems []definition.Problem) []protocol.Diagnostic {
	lines := strings.Split(string(content), "\n")
	severity := protocol.DiagnosticSeverityError
	source := lsName

	diagnostics := make([]protocol.Diagnostic, 0, len(problems))
	for _, p := range problems {
		line := max(p.Pos.Line-1, 0)
		start := max(p.Pos.Column-1, 0)
		end := start
		if line < len(lines) {
			text := strings.TrimRight(lines[line], "\r")
			start = utf16Column(text, start)
			end = max(utf16Column(text, len(text)), start)
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(start)},
				End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(end)},
			},
			Severity: &severity,
			Source:   &source,
			Message:  p.Message,
		})
	}
	return diagnostics
}

func (ls *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	ls.mu.Lock()
	doc, ok := ls.docs[path]
	var content []byte
	var names []string
	if ok {
		content = doc.content
		names = doc.names
	}
	ls.mu.Unlock()
	if !ok {
		return nil, nil
	}

	line := lineAt(content, int(params.Position.Line))
	items := Completions(line, int(params.Position.Character), names)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func lineAt(content []byte, line int) string {
	lines := strings.Split(string(content), "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}

type completionKind int

const (
	completeNothing completionKind = iota
	completeType
	completeRef
)

// utf16Column converts a column counted in characters, as yaml.v3 reports
// it, into UTF-16 code units of line. Columns past the end keep counting one
// unit per missing character.
func utf16Column(line string, column int) int {
	units := 0
	for _, r := range line {
		if column == 0 {
			return units
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
		column--
	}
	return units + column
}

// byteOffset converts a character offset in UTF-16 code units, as clients
// send it, into a byte offset into line. Offsets past the end clamp to it.
func byteOffset(line string, character int) int {
	units := 0
	for i, r := range line {
		if units >= character {
			return i
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
	}
	return len(line)
}

// completionContext inspects the text before col, counted in UTF-16 code
// units, and reports which value is being typed after "type:" or "ref:",
// along with the typed prefix.
func completionContext(line string, col int) (completionKind, string) {
	before := strings.TrimLeft(line[:byteOffset(line, col)], " \t")
	before = strings.TrimLeft(strings.TrimPrefix(before, "-"), " \t")

	key, value, ok := strings.Cut(before, ":")
	if !ok {
		return completeNothing, ""
	}
	value = strings.TrimLeft(value, " \t")
	if strings.ContainsAny(value, " \t") {
		return completeNothing, ""
	}
	switch key {
	case "type":
		return completeType, value
	case "ref":
		return completeRef, value
	}
	return completeNothing, ""
}

// Completions returns the items for the cursor at col of line. Data types
// are offered after "type:" and the given entity and DTO names after "ref:".
func Completions(line string, col int, names []string) []protocol.CompletionItem {
	kind, prefix := completionContext(line, col)

	var candidates []string
	var itemKind protocol.CompletionItemKind
	var detail string
	switch kind {
	case completeType:
		candidates = definition.DataTypeNames()
		itemKind = protocol.CompletionItemKindKeyword
		detail = "data type"
	case completeRef:
		candidates = names
		itemKind = protocol.CompletionItemKindClass
		detail = "entity or dto"
	default:
		return nil
	}

	format := protocol.InsertTextFormatPlainText
	var items []protocol.CompletionItem
	for _, c := range candidates {
		if !strings.HasPrefix(c, prefix) {
			continue
		}
		label, k, d := c, itemKind, detail
		items = append(items, protocol.CompletionItem{
			Label:            label,
			Kind:             &k,
			Detail:           &d,
			InsertText:       &label,
			InsertTextFormat: &format,
		})
	}
	return items
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
