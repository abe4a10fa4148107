package options

import (
	"fmt"
	"io"
	"strings"
)

// Synopsis returns how d is written on the command line, in the form
// "-s --long=<type>", followed by " [+]" for list options.
func (p *Parser) Synopsis(d *Descriptor) string {
	prefix := LongPrefix
	if p.cfg.UseSingleDash {
		prefix = ShortPrefix
	}

	name := prefix + d.DisplayName(p.cfg.UseUnderscores)
	if d.shortName != "" {
		name = ShortPrefix + d.shortName + " " + name
	}
	name += fmt.Sprintf("=<%s>", d.typeName)
	if d.list {
		name += " [+]"
	}
	return name
}

// Usage returns the usage message for the options of the registry.
//
// With no group names, it describes every publicized option, organized by
// group when the registry has groups; groups that are unpublicized or hold
// no publicized option are left out. Otherwise it describes exactly the
// named groups. showUnpublicized treats every option and group as
// publicized.
func (p *Parser) Usage(showUnpublicized bool, groupNames ...string) (string, error) {
	reg := p.reg

	if !reg.hasGroups {
		if len(groupNames) > 0 {
			return "", ErrNoGroups
		}
		width := p.maxOptionLength(reg.options, showUnpublicized)
		return p.formatOptions(reg.options, width, showUnpublicized), nil
	}

	var groups []*Group
	if len(groupNames) > 0 {
		for _, name := range groupNames {
			g, ok := reg.groupsByName[name]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrUnknownGroup, name)
			}
			if !showUnpublicized && !g.AnyPublicized() {
				return "", fmt.Errorf("%w: %s", ErrGroupNotPublicized, name)
			}
			groups = append(groups, g)
		}
	} else {
		for _, g := range reg.groups {
			if (g.Unpublicized || !g.AnyPublicized()) && !showUnpublicized {
				continue
			}
			groups = append(groups, g)
		}
	}

	// One width for every group keeps the descriptions aligned
	width := 0
	for _, g := range groups {
		width = max(width, p.maxOptionLength(g.options, showUnpublicized))
	}

	sections := make([]string, 0, 2*len(groups))
	for _, g := range groups {
		sections = append(sections, "\n"+g.Name+":")
		sections = append(sections, p.formatOptions(g.options, width, showUnpublicized))
	}
	return strings.Join(sections, "\n"), nil
}

// PrintUsage writes the synopsis line, the usage of all publicized options,
// and a note on repeatable options when any are listed.
func (p *Parser) PrintUsage(w io.Writer) {
	p.hasListOption = false
	if p.reg.synopsis != "" {
		fmt.Fprintf(w, "Usage: %s\n", p.reg.synopsis)
	}

	// Without names Usage cannot fail
	usage, _ := p.Usage(false)
	fmt.Fprintln(w, usage)

	if p.hasListOption {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ListHelp)
	}
}

// Settings returns the current value of every option, one "name = value"
// line per option, names padded to a common width.
func (p *Parser) Settings(showUnpublicized bool) string {
	width := p.maxOptionLength(p.reg.options, showUnpublicized)

	lines := make([]string, 0, len(p.reg.options))
	for _, d := range p.reg.options {
		lines = append(lines, fmt.Sprintf("%-*s = %s", width, d.DisplayName(p.cfg.UseUnderscores), d.Value()))
	}
	return strings.Join(lines, "\n")
}

// formatOptions renders one usage line per shown option and notes whether
// a list option was shown.
func (p *Parser) formatOptions(opts []*Descriptor, width int, showUnpublicized bool) string {
	lines := make([]string, 0, len(opts))
	for _, d := range opts {
		if d.unpublicized && !showUnpublicized {
			continue
		}

		defaultStr := ""
		if d.hasDefault && !d.noDocDefault {
			defaultStr = fmt.Sprintf(" [default %s]", d.defaultStr)
		}
		lines = append(lines, fmt.Sprintf("  %-*s - %s%s", width, p.Synopsis(d), d.description, defaultStr))

		if d.list {
			p.hasListOption = true
		}
	}
	return strings.Join(lines, "\n")
}

// maxOptionLength returns the length of the longest synopsis among the
// shown options.
func (p *Parser) maxOptionLength(opts []*Descriptor, showUnpublicized bool) int {
	width := 0
	for _, d := range opts {
		if d.unpublicized && !showUnpublicized {
			continue
		}
		width = max(width, len(p.Synopsis(d)))
	}
	return width
}
