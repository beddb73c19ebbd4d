package versioning

import (
	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// convertNodeInternal performs a single version-to-version hop, grounded
// on GmodVersioning::convertNodeInternal: look up a replacement code in
// the step's conversion table (falling back to the source code
// unchanged), resolve it in the target Gmod, and carry the source node's
// location across if it had one.
func (v *Versioning) convertNodeInternal(n gmod.GmodNode, targetVersion visversion.VisVersion, targetGmod *gmod.Gmod) (gmod.GmodNode, bool) {
	code := n.Code()
	if table, ok := v.tables[targetVersion]; ok {
		if conv, ok := table[code]; ok && conv.hasTargetCode {
			code = conv.targetCode
		}
	}

	target, ok := targetGmod.TryGetNode(code)
	if !ok {
		return gmod.GmodNode{}, false
	}
	if loc, has := n.Location(); has {
		target = target.WithLocation(loc)
	}
	return target, true
}

// ConvertNode walks n forward one VIS version at a time from
// sourceVersion to targetVersion, stopping with ok=false the moment any
// intervening hop has no equivalent node (GmodVersioning::convertNode's
// chained-version loop). Converting a node to its own version returns it
// unchanged.
func (v *Versioning) ConvertNode(sourceVersion visversion.VisVersion, n gmod.GmodNode, targetVersion visversion.VisVersion, gmods GmodSource) (gmod.GmodNode, bool) {
	if n.Code() == "" {
		return gmod.GmodNode{}, false
	}

	cur := n
	source := sourceVersion
	for source.Compare(targetVersion) < 0 {
		next, ok := source.Successor()
		if !ok {
			return gmod.GmodNode{}, false
		}
		nextGmod, ok := gmods.Gmod(next)
		if !ok {
			return gmod.GmodNode{}, false
		}
		converted, ok := v.convertNodeInternal(cur, next, nextGmod)
		if !ok {
			return gmod.GmodNode{}, false
		}
		cur = converted
		source = next
	}
	return cur, true
}
