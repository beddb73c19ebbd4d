// Package gmod implements the Generic Product Model DAG and the path
// language that walks it (spec.md §4.4/§4.5, C5/C6).
package gmod

import (
	"strings"

	"github.com/ronan-fesselier/vista-sdk-go/location"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// Category and type constants a node's metadata is checked against. These
// mirror the closed constant set spec.md §3 names (ASSET, FUNCTION,
// PRODUCT, SELECTION, TYPE, COMPOSITION, GROUP).
const (
	categoryProduct         = "PRODUCT"
	categoryAsset           = "ASSET"
	categoryProductFunction = "PRODUCT FUNCTION"
	categoryAssetFunction   = "ASSET FUNCTION"
	categoryValueFunction   = "FUNCTION"

	typeSelection  = "SELECTION"
	typeGroup      = "GROUP"
	typeComposition = "COMPOSITION"
	typeValueType  = "TYPE"
)

// rootCode is the fixed code of the single GMOD root node.
const rootCode = "VE"

// Metadata is the descriptive data carried by one GmodNode (spec.md §3).
type Metadata struct {
	Category              string
	Type                  string
	Name                  string
	CommonName            string
	Definition            string
	CommonDefinition      string
	InstallSubstructure   *bool
	NormalAssignmentNames map[string]string
}

// FullType is the derived category+" "+type categorization key.
func (m Metadata) FullType() string {
	return m.Category + " " + m.Type
}

// childRef is a lightweight summary of one child edge, carrying just
// enough of the child's own metadata for category/type predicates that
// need to look one edge down (productType, productSelection) without the
// node needing to hold a pointer or arena reference back into Gmod.
type childRef struct {
	index    int
	code     string
	category string
	typ      string
}

// GmodNode is one node of a Gmod DAG. Immutable once registered in a Gmod:
// code, metadata, VIS version and structural edges never change after
// construction. The only supported transformation is WithLocation /
// WithoutLocation, each of which returns a new value rather than mutating
// the receiver (spec.md §3).
//
// Per spec.md's design notes (§9), children and parents are arena indices
// into the owning Gmod's node slice, not pointers: this keeps the DAG's
// cycles out of Go's ownership graph even though Go's GC would tolerate
// pointer cycles just fine.
type GmodNode struct {
	code       string
	metadata   Metadata
	visVersion visversion.VisVersion

	loc    location.Location
	hasLoc bool

	children []childRef
	parents  []int
	childSet map[string]bool
}

// Code returns the node's short identifier.
func (n GmodNode) Code() string { return n.code }

// Metadata returns the node's descriptive metadata.
func (n GmodNode) Metadata() Metadata { return n.metadata }

// VisVersion returns the VIS version this node belongs to.
func (n GmodNode) VisVersion() visversion.VisVersion { return n.visVersion }

// Location returns the node's location occurrence, if any.
func (n GmodNode) Location() (location.Location, bool) { return n.loc, n.hasLoc }

// WithLocation returns a copy of n carrying loc.
func (n GmodNode) WithLocation(loc location.Location) GmodNode {
	n.loc = loc
	n.hasLoc = true
	return n
}

// WithoutLocation returns a copy of n with no location.
func (n GmodNode) WithoutLocation() GmodNode {
	n.loc = location.Location{}
	n.hasLoc = false
	return n
}

// Equal reports identity equality: spec.md §3 defines node identity as
// (code, location).
func (n GmodNode) Equal(other GmodNode) bool {
	if n.code != other.code || n.hasLoc != other.hasLoc {
		return false
	}
	if !n.hasLoc {
		return true
	}
	return n.loc.Equal(other.loc)
}

// IsChild reports whether code names a direct child of n.
func (n GmodNode) IsChild(code string) bool {
	return n.childSet[code]
}

// ChildCodes returns the codes of n's direct children, in edge order.
func (n GmodNode) ChildCodes() []string {
	out := make([]string, len(n.children))
	for i, c := range n.children {
		out[i] = c.code
	}
	return out
}

// IsRoot reports whether n is the GMOD root ("VE").
func (n GmodNode) IsRoot() bool { return n.code == rootCode }

//----------------------------------------------------------------------
// Node categorization predicates (spec.md §3), grounded on
// GmodNode.cpp's isProductType/isProductSelection/isAsset/isLeafNode/
// isFunctionNode/isFunctionComposition/isMappable/isIndividualizable and
// the Gmod::isX(metadata) static helpers they delegate to. The pack did
// not retrieve Gmod.cpp (only GmodNode.cpp), so the category/type
// constant combinations for the single-metadata predicates below are
// reconstructed from call-site naming, not read verbatim off a static
// helper body; see DESIGN.md.
//----------------------------------------------------------------------

// IsProductType reports whether n's own metadata marks it a product type.
func (n GmodNode) IsProductType() bool {
	return n.metadata.Category == categoryProduct && n.metadata.Type == typeValueType
}

// IsProductSelection reports whether n's own metadata marks it a product
// selection: a PRODUCT-flavored category together with SELECTION type.
func (n GmodNode) IsProductSelection() bool {
	return strings.Contains(n.metadata.Category, categoryProduct) && n.metadata.Type == typeSelection
}

// IsAsset reports whether n is categorized as an asset.
func (n GmodNode) IsAsset() bool {
	return n.metadata.Category == categoryAsset
}

// IsFunctionComposition reports whether n is an asset- or product-function
// composition node.
func (n GmodNode) IsFunctionComposition() bool {
	cat := n.metadata.Category
	return (cat == categoryAssetFunction || cat == categoryProductFunction) && n.metadata.Type == typeComposition
}

// IsLeafNode reports whether n's full type marks it a leaf of the function
// hierarchy.
func (n GmodNode) IsLeafNode() bool {
	ft := n.metadata.FullType()
	return ft == categoryAssetFunction+" LEAF" || ft == categoryProductFunction+" LEAF"
}

// IsFunctionNode reports whether n belongs to the function hierarchy
// rather than being a product or a product selection.
func (n GmodNode) IsFunctionNode() bool {
	return !n.IsProductSelection() && !n.IsProductType() && !n.IsAsset()
}

// IsAssetFunctionNode reports whether n is specifically categorized as an
// asset function.
func (n GmodNode) IsAssetFunctionNode() bool {
	return n.metadata.Category == categoryAssetFunction
}

// productTypeChild returns the single child that satisfies the
// child-introspecting "product type" relationship GmodNode.cpp's
// productType() checks: n has exactly one child, n's own category
// contains FUNCTION, and that child is itself PRODUCT/TYPE.
func (n GmodNode) productTypeChild() (childRef, bool) {
	if len(n.children) != 1 {
		return childRef{}, false
	}
	if !strings.Contains(n.metadata.Category, categoryValueFunction) {
		return childRef{}, false
	}
	c := n.children[0]
	if c.category != categoryProduct || c.typ != typeValueType {
		return childRef{}, false
	}
	return c, true
}

// productSelectionChild is productTypeChild's counterpart for the
// PRODUCT/SELECTION child shape.
func (n GmodNode) productSelectionChild() (childRef, bool) {
	if len(n.children) != 1 {
		return childRef{}, false
	}
	if !strings.Contains(n.metadata.Category, categoryValueFunction) {
		return childRef{}, false
	}
	c := n.children[0]
	if !strings.Contains(c.category, categoryProduct) || c.typ != typeSelection {
		return childRef{}, false
	}
	return c, true
}

// IsMappable reports whether n can carry a Local ID mapping: not a product
// type, not a product selection (by either the own-metadata or
// child-introspecting test), not an asset, and its code does not end in
// 'a' or 's'.
func (n GmodNode) IsMappable() bool {
	if _, ok := n.productTypeChild(); ok {
		return false
	}
	if _, ok := n.productSelectionChild(); ok {
		return false
	}
	if n.IsProductSelection() {
		return false
	}
	if n.IsAsset() {
		return false
	}
	if n.code == "" {
		return false
	}
	last := n.code[len(n.code)-1]
	return last != 'a' && last != 's'
}

// IsIndividualizable reports whether n can be the individualizing node of
// a path occurrence. isTargetNode marks whether n is the path's end node;
// isInSet marks whether n is being considered inside a location-bearing
// set.
func (n GmodNode) IsIndividualizable(isTargetNode, isInSet bool) bool {
	if n.metadata.Type == typeGroup {
		return false
	}
	if n.metadata.Type == typeSelection {
		return false
	}
	if n.IsProductType() {
		return false
	}
	if n.metadata.Category == categoryAsset && n.metadata.Type == typeValueType {
		return false
	}
	if n.IsFunctionComposition() {
		if n.code == "" {
			return false
		}
		return n.code[len(n.code)-1] == 'i' || isInSet || isTargetNode
	}
	return true
}
