package localid

import (
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/codebook"
	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/location"
	"github.com/ronan-fesselier/vista-sdk-go/parseerrors"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// Resolver supplies the per-VIS-version artifacts the parser needs to
// validate a primary/secondary path and its metadata tags. The VIS façade
// (package vis) is the production implementation; tests can supply a
// smaller stand-in.
type Resolver interface {
	Gmod(v visversion.VisVersion) (*gmod.Gmod, bool)
	Codebooks(v visversion.VisVersion) (*codebook.Codebooks, bool)
	Locations(v visversion.VisVersion) (*location.Grammar, bool)
}

// parseState is one of the parser's named states (spec.md §4.7), used
// only to classify ordering within the metadata-segment loop; the
// path-collection steps (PrimaryItem/SecondaryItem) are handled directly
// rather than threaded through this enum.
type parseState int

const (
	stateMetaQuantity parseState = iota
	stateMetaContent
	stateMetaCalculation
	stateMetaState
	stateMetaCommand
	stateMetaType
	stateMetaPosition
	stateMetaDetail
)

var stateOrder = map[codebook.Name]parseState{
	codebook.Quantity:    stateMetaQuantity,
	codebook.Content:     stateMetaContent,
	codebook.Calculation: stateMetaCalculation,
	codebook.State:       stateMetaState,
	codebook.Command:     stateMetaCommand,
	codebook.Type:        stateMetaType,
	codebook.Position:    stateMetaPosition,
	codebook.Detail:      stateMetaDetail,
}

// TryParse runs the one-pass Local ID parser (spec.md §4.7) against s,
// returning the populated builder only if no error was recorded.
func TryParse(s string, resolver Resolver) (Builder, bool) {
	b, errs := TryParseWithErrors(s, resolver)
	return b, errs.IsEmpty()
}

// TryParseWithErrors is TryParse but always returns the accumulated
// ParsingErrors alongside whatever builder state was reconstructed, per
// spec.md §4.7's "all error-producing steps continue scanning" rule.
func TryParseWithErrors(s string, resolver Resolver) (Builder, parseerrors.Errors) {
	var errs parseerrors.Errors
	b := NewBuilder()

	if !strings.HasPrefix(s, "/") {
		errs.Add(parseerrors.KindFormatting, "local id string must start with '/'")
		return b, errs
	}

	segments := strings.Split(strings.TrimPrefix(s, "/"), "/")
	if len(segments) == 0 {
		errs.Add(parseerrors.KindFormatting, "local id string has no segments")
		return b, errs
	}
	i := 0

	if segments[i] != "dnv-v2" {
		errs.Add(parseerrors.KindNamingRule, "expected naming rule \"dnv-v2\"")
		return b, errs
	}
	i++

	if i >= len(segments) {
		errs.Add(parseerrors.KindVisVersion, "missing VIS version segment")
		return b, errs
	}
	visSeg := segments[i]
	if !strings.HasPrefix(visSeg, "vis-") {
		errs.Add(parseerrors.KindVisVersion, "expected \"vis-<version>\" segment")
		return b, errs
	}
	v, err := visversion.Parse(strings.TrimPrefix(visSeg, "vis-"))
	if err != nil {
		errs.Add(parseerrors.KindVisVersion, err.Error())
		return b, errs
	}
	g, ok := resolver.Gmod(v)
	if !ok {
		errs.Add(parseerrors.KindVisVersion, "no Gmod available for the requested VIS version")
		return b, errs
	}
	cbs, ok := resolver.Codebooks(v)
	if !ok {
		errs.Add(parseerrors.KindVisVersion, "no Codebooks available for the requested VIS version")
		return b, errs
	}
	locGrammar, _ := resolver.Locations(v)
	b = b.WithVisVersion(v)
	i++

	// Step 4: scan the primary item window up to sec/meta/~.
	primaryEnd := i
	for primaryEnd < len(segments) {
		seg := segments[primaryEnd]
		if seg == "sec" || seg == "meta" || strings.HasPrefix(seg, "~") {
			break
		}
		primaryEnd++
	}
	if primaryEnd > i {
		path, err := g.TryParsePath(strings.Join(segments[i:primaryEnd], "/"), locGrammar)
		if err != nil {
			errs.Add(parseerrors.KindPrimaryItem, err.Error())
		} else {
			items := b.Items().WithPrimary(path)
			b = b.WithItems(items)
		}
	} else {
		errs.Add(parseerrors.KindPrimaryItem, "empty primary item segment")
	}
	i = primaryEnd

	// Step 5: optional secondary item.
	if i < len(segments) && segments[i] == "sec" {
		i++
		secEnd := i
		for secEnd < len(segments) {
			seg := segments[secEnd]
			if seg == "meta" || strings.HasPrefix(seg, "~") {
				break
			}
			secEnd++
		}
		if secEnd > i {
			path, err := g.TryParsePath(strings.Join(segments[i:secEnd], "/"), locGrammar)
			if err != nil {
				errs.Add(parseerrors.KindSecondaryItem, err.Error())
			} else {
				items := b.Items().WithSecondary(path)
				b = b.WithItems(items)
			}
		} else {
			errs.Add(parseerrors.KindSecondaryItem, "empty secondary item segment")
		}
		i = secEnd
	}

	// Step 6: verbose ~ segments carry no information the parser needs;
	// they are redundant with the already-parsed paths, so skip forward
	// to "meta".
	for i < len(segments) && segments[i] != "meta" {
		i++
	}

	if i >= len(segments) || segments[i] != "meta" {
		errs.Add(parseerrors.KindCompleteness, "missing meta segment")
		return finish(b, errs)
	}
	i++

	// Step 7: metadata tag segments.
	expected := stateMetaQuantity
	for ; i < len(segments); i++ {
		seg := segments[i]
		if seg == "" {
			continue
		}
		sepIdx := strings.IndexAny(seg, "-~")
		if sepIdx <= 0 {
			errs.Add(parseerrors.KindFormatting, "malformed metadata segment \""+seg+"\"")
			continue
		}
		prefix := seg[:sepIdx]
		sep := seg[sepIdx]
		value := seg[sepIdx+1:]

		name, ok := codebook.NameFromPrefix(prefix)
		if !ok {
			errs.Add(parseerrors.KindFormatting, "unrecognized metadata prefix \""+prefix+"\"")
			continue
		}
		st, ok := stateOrder[name]
		if !ok {
			errs.Add(parseerrors.KindFormatting, "metadata name \""+name.Prefix()+"\" is not a directly-supported tag")
			continue
		}
		if st < expected {
			errs.Add(parseerrors.MetaKind(string(name)), "metadata segment \""+seg+"\" is out of order")
		} else {
			expected = st
		}

		tag, ok := cbs.TryCreateTag(name, value)
		if !ok {
			errs.Add(parseerrors.MetaKind(string(name)), "invalid value for "+string(name)+": \""+value+"\"")
			continue
		}
		wantCustom := sep == '~'
		if wantCustom != tag.IsCustom() {
			errs.Add(parseerrors.MetaKind(string(name)), "separator does not agree with standard/custom value for \""+seg+"\"")
		}
		b = b.WithMetadataTag(tag)
	}

	return finish(b, errs)
}

// finish applies spec.md §4.7 step 8's final completeness checks.
func finish(b Builder, errs parseerrors.Errors) (Builder, parseerrors.Errors) {
	if _, ok := b.VisVersion(); !ok {
		errs.Add(parseerrors.KindCompleteness, "missing VIS version")
	}
	primary, ok := b.Items().PrimaryItem()
	if !ok || primary == nil || primary.Len() == 0 {
		errs.Add(parseerrors.KindCompleteness, "missing or empty primary item")
	}
	if len(b.MetadataTags()) == 0 {
		errs.Add(parseerrors.KindCompleteness, "at least one metadata tag is required")
	}
	return b, errs
}
