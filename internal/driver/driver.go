// Package driver implements C9, the archive driver: it walks the input
// archive unit by unit, builds class models, runs the method and class
// classifiers, annotates the located elements, and writes the output
// archive (spec §4.8).
package driver

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/standardbeagle/stereotype/internal/classbuilder"
	"github.com/standardbeagle/stereotype/internal/classify"
	"github.com/standardbeagle/stereotype/internal/display"
	"github.com/standardbeagle/stereotype/internal/model"
	"github.com/standardbeagle/stereotype/internal/primitives"
	"github.com/standardbeagle/stereotype/internal/stereotypeerrors"
	"github.com/standardbeagle/stereotype/internal/types"
	"github.com/standardbeagle/stereotype/internal/xmlarchive"
	"github.com/standardbeagle/stereotype/internal/xpathcat"
)

// classElementXPath finds the class/struct/interface-like elements of a
// unit's own language, in document order. Locating class boundaries is a
// prior, generic step to the per-class queries the catalog encodes (spec
// §4.5 takes "an archive unit and a class XPath" as already-given inputs);
// the srcML element vocabulary that names these boundaries (<class>,
// <struct>, <interface>) is identical across the three source languages,
// so this needs no per-language table entry of its own.
func classElementXPath(lang types.Language) string {
	switch lang {
	case types.CPP:
		return ".//src:class | .//src:struct"
	case types.CSharp:
		return ".//src:class | .//src:struct | .//src:interface"
	case types.Java:
		return ".//src:class | .//src:interface"
	default:
		return ""
	}
}

// Config bundles the run-time options spec §6 lists for the driver.
type Config struct {
	InputArchive             string
	OutputArchive            string
	PrimitivesPath           string
	StereotypesPath          string
	MethodsPerClassThreshold int
	Languages                []types.Language
}

// Driver ties together the primitive table, XPath catalog, and class
// builder shared read-only across every unit (spec §5's shared-resource
// model).
type Driver struct {
	Config     Config
	Primitives *primitives.Table
	Catalog    *xpathcat.Catalog
	Builder    *classbuilder.Builder
	Printer    *display.Printer
}

// New wires a driver from a configuration and a shared printer.
func New(cfg Config, prims *primitives.Table, printer *display.Printer) *Driver {
	catalog := xpathcat.New()
	return &Driver{
		Config:     cfg,
		Primitives: prims,
		Catalog:    catalog,
		Builder:    classbuilder.New(catalog, prims),
		Printer:    printer,
	}
}

// Run loads the input archive, classifies every unit, and writes the
// annotated output archive. A malformed archive is fatal (spec §7); an
// unrecognised per-unit language is skipped with a single warning.
func (d *Driver) Run() error {
	archive, err := xmlarchive.Load(d.Config.InputArchive)
	if err != nil {
		return stereotypeerrors.NewClassificationError(stereotypeerrors.ErrorTypeMalformedArchive, "load-archive", err)
	}

	for _, unit := range archive.Units() {
		if err := d.processUnit(archive, unit); err != nil {
			cerr, ok := err.(*stereotypeerrors.ClassificationError)
			if ok && !cerr.IsFatal() {
				d.Printer.Warn("skipping unit %d: %s", unit.Index, err)
				continue
			}
			return err
		}
	}

	if err := archive.Save(d.Config.OutputArchive); err != nil {
		return errors.Wrap(err, "stereotype: writing output archive")
	}
	return nil
}

func (d *Driver) processUnit(archive *xmlarchive.Archive, unit *xmlarchive.Unit) error {
	if !unit.Language.Known() {
		return stereotypeerrors.NewClassificationError(stereotypeerrors.ErrorTypeUnknownLanguage, "detect-language", fmt.Errorf("unrecognised language tag %q", unit.RawLang)).
			WithUnit(unit.Index).
			WithRecoverable(true)
	}
	if !d.Primitives.HasLanguage(unit.Language) {
		return stereotypeerrors.NewClassificationError(stereotypeerrors.ErrorTypePrimitiveTable, "primitive-lookup", fmt.Errorf("no primitive table for language %q", unit.Language)).
			WithUnit(unit.Index)
	}
	if len(d.Config.Languages) > 0 && !containsLanguage(d.Config.Languages, unit.Language) {
		return nil
	}

	fingerprint := xxhash.Sum64String(xmlarchive.OuterXML(unit.Node))
	d.Printer.Verbosef("unit %d: language=%s fingerprint=%x", unit.Index, unit.Language, fingerprint)

	classXPath := classElementXPath(unit.Language)
	if classXPath == "" {
		return nil
	}
	classNodes, err := xmlquery.QueryAll(unit.Node, classXPath)
	if err != nil {
		return stereotypeerrors.NewClassificationError(stereotypeerrors.ErrorTypeXPathFailure, "locate-classes", err).
			WithUnit(unit.Index).
			WithRecoverable(true)
	}

	classesByBareName := map[string]*model.Class{}
	var order []string

	for i, node := range classNodes {
		xpath := fmt.Sprintf("(%s)[%d]", classXPath, i+1)
		built := d.Builder.Build(node, unit.Language, unit.Index, xpath)

		key := built.Names.Bare
		if key == "" {
			key = fmt.Sprintf("$anon:%d", i)
		}
		if existing, ok := classesByBareName[key]; ok {
			mergePartial(existing, built)
			continue
		}
		classesByBareName[key] = built
		order = append(order, key)
	}

	for _, key := range order {
		c := classesByBareName[key]
		for _, m := range c.Methods {
			classify.Method(m, c.Names.Bare, unit.Language)
		}
		classify.Class(c, d.Config.MethodsPerClassThreshold)

		for _, m := range c.Methods {
			xmlarchive.Annotate(m.Node, m.StereotypeString())
		}
		xmlarchive.Annotate(c.Node, c.StereotypeString())
	}
	return nil
}

// mergePartial folds a re-occurring partial-class declaration (C#) into an
// already-built class model: attributes, non-private attributes, and
// methods accumulate; the class's names and structure kind are kept from
// the first occurrence, and parents are merged (a parent already recorded
// keeps its first visibility), per spec §4.5's numOfCurrent bookmark
// pattern.
func mergePartial(into, extra *model.Class) {
	for name, v := range extra.Attributes {
		if name == "this" {
			continue
		}
		into.Attributes[name] = v
	}
	for name, v := range extra.NonPrivateAndInheritedAttributes {
		into.NonPrivateAndInheritedAttributes[name] = v
	}
	for name, vis := range extra.Parents {
		if _, ok := into.Parents[name]; !ok {
			into.Parents[name] = vis
		}
	}
	into.Methods = append(into.Methods, extra.Methods...)
	into.ConstructorDestructorCount += extra.ConstructorDestructorCount
	into.XPathsByUnit[extra.Unit] = append(into.XPathsByUnit[extra.Unit], extra.XPathsByUnit[extra.Unit]...)
}

func containsLanguage(langs []types.Language, l types.Language) bool {
	for _, x := range langs {
		if x == l {
			return true
		}
	}
	return false
}
