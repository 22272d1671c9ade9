package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tbckr/lookupkit/internal/input"
	"github.com/tbckr/lookupkit/internal/lookup"
	"github.com/tbckr/lookupkit/internal/tools"
	"github.com/tbckr/lookupkit/internal/validate"
)

func newInteractiveCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive <tool>",
		Aliases: []string{"i"},
		Short:   "Submit lookups line by line and show each state change",
		Long: `Start an interactive session for one tool. Every line read from stdin is a
new submission; a submission made while another is still loading supersedes
it, and only the newest result is shown.

For the email tool, a header is submitted when an empty line follows it.`,
		Example: `  lookupkit interactive ip
  printf '8.8.8.8\n1.1.1.1\n' | lookupkit interactive rdns`,
		GroupID: "lookup",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return tools.Names(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			def, ok := tools.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q (available: %s)", args[0], strings.Join(tools.Names(), ", "))
			}
			api, err := d.newAPIClient()
			if err != nil {
				return err
			}
			controller := lookup.New(def.Tool, d.validator, api, d.logger)
			s := &session{
				d:      d,
				def:    def,
				c:      controller,
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				prompt: input.IsTerminal(cmd.InOrStdin()),
			}
			return s.run(cmd, cmd.InOrStdin())
		},
	}
}

// session renders one controller's transitions while feeding it lines.
type session struct {
	d      *deps
	def    tools.Definition
	c      *lookup.Controller
	out    io.Writer
	errOut io.Writer
	prompt bool

	// mu serialises rendering with prompt output.
	mu sync.Mutex
}

func (s *session) run(cmd *cobra.Command, r io.Reader) error {
	unsubscribe := s.c.Subscribe(s.render)
	defer unsubscribe()

	var last <-chan lookup.State
	submit := func(text string) {
		last = s.c.Submit(cmd.Context(), text)
		if s.prompt {
			// Let the result render before prompting again.
			<-last
		}
	}

	multiLine := acceptsOnly(s.def, validate.KindRawHeader)
	var block []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), input.MaxDocumentSize)
	s.showPrompt()
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case !multiLine:
			if strings.TrimSpace(line) == "" {
				s.showPrompt()
				continue
			}
			submit(line)
		case strings.TrimSpace(line) == "" && len(block) > 0:
			submit(strings.Join(block, "\n"))
			block = nil
		case strings.TrimSpace(line) != "":
			block = append(block, line)
			continue
		}
		s.showPrompt()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	if len(block) > 0 {
		submit(strings.Join(block, "\n"))
	}
	if last == nil {
		return nil
	}
	if final := <-last; final.ShowError() {
		return fmt.Errorf("%w: %s", ErrLookupFailed, final.Error)
	}
	return nil
}

func (s *session) showPrompt() {
	if !s.prompt {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.errOut, "%s> ", s.def.Name)
}

// render draws the loading indicator, the error banner, or the results view.
func (s *session) render(st lookup.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case st.Loading():
		_, _ = fmt.Fprintf(s.errOut, "Looking up %s...\n", label(st.Validation.Value))
	case st.ShowError():
		_, _ = fmt.Fprintf(s.errOut, "Error: %s\n", st.Error)
	case st.ShowResults():
		res, err := s.def.Decode(st.Payload)
		if err != nil {
			s.d.logger.Debug("showing raw payload", "input", label(st.Input), "error", err)
		}
		if res.IsEmpty() {
			_, _ = fmt.Fprintln(s.errOut, "No results.")
			return
		}
		if err := writeResult(s.out, s.d, res); err != nil {
			s.d.logger.Error("rendering result", "error", err)
		}
	}
}
