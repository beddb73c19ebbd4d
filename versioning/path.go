package versioning

import (
	"fmt"

	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// ConvertPath converts sourcePath from sourceVersion to targetVersion,
// memoizing by (sourceVersion, sourcePath.String(), targetVersion)
// (spec.md §4.9). A nil path and nil error together mean "no equivalent
// path exists in the target version" — a legitimate outcome, not a
// failure; a non-nil error means the conversion table or target Gmod is
// itself malformed.
func (v *Versioning) ConvertPath(sourceVersion visversion.VisVersion, sourcePath *gmod.Path, targetVersion visversion.VisVersion, gmods GmodSource) (*gmod.Path, error) {
	if sourcePath == nil || sourcePath.Len() == 0 {
		return nil, fmt.Errorf("versioning: cannot convert an empty path")
	}

	key := cacheKey{sourceVersion: sourceVersion, sourcePath: sourcePath.String(), targetVersion: targetVersion}
	if cached, convertible, found := v.cache.get(key); found {
		if !convertible {
			return nil, nil
		}
		return cached, nil
	}

	path, convertible, err := v.convertPathInternal(sourceVersion, sourcePath, targetVersion, gmods)
	if err != nil {
		return nil, err
	}
	v.cache.put(key, path, convertible)
	if !convertible {
		return nil, nil
	}
	return path, nil
}

// convertPathInternal is GmodVersioning::convertPathInternal: convert the
// end node first; if the reconstructed path built purely from
// node-by-node conversion is already a valid parent chain, that's the
// answer. Otherwise rebuild the path step by step, and whenever a step's
// converted node doesn't attach to the path built so far, walk backward
// through the already-built ancestors looking for one that still reaches
// it (addToPath), splicing in whatever intermediates are found or
// dropping an ancestor that leads nowhere.
func (v *Versioning) convertPathInternal(sourceVersion visversion.VisVersion, sourcePath *gmod.Path, targetVersion visversion.VisVersion, gmods GmodSource) (*gmod.Path, bool, error) {
	targetEndNode, ok := v.ConvertNode(sourceVersion, sourcePath.EndNode(), targetVersion, gmods)
	if !ok {
		return nil, false, nil
	}

	targetGmod, ok := gmods.Gmod(targetVersion)
	if !ok {
		return nil, false, fmt.Errorf("versioning: no gmod registered for target version %s", targetVersion)
	}

	if targetEndNode.IsRoot() {
		root, ok := targetGmod.RootNode()
		if !ok {
			return nil, false, fmt.Errorf("versioning: target gmod %s has no root node", targetVersion)
		}
		rootOcc, ok := gmod.OccurrenceOf(targetGmod, root)
		if !ok {
			return nil, false, fmt.Errorf("versioning: target gmod %s root node not found in its own arena", targetVersion)
		}
		return gmod.NewPath(targetGmod, nil, rootOcc), true, nil
	}

	sourceGmod := sourcePath.Gmod()

	type qualifying struct {
		source    gmod.GmodNode
		converted gmod.GmodNode
	}

	full := sourcePath.FullPath()
	qualifyingNodes := make([]qualifying, 0, len(full))
	for _, occ := range full {
		sourceNode := sourceGmod.NodeFor(occ)
		converted, ok := v.ConvertNode(sourceVersion, sourceNode, targetVersion, gmods)
		if !ok {
			return nil, false, fmt.Errorf("versioning: could not convert node %q forward to %s", occ.Code, targetVersion)
		}
		qualifyingNodes = append(qualifyingNodes, qualifying{source: sourceNode, converted: converted})
	}

	potentialParents := make([]gmod.Occurrence, 0, len(qualifyingNodes))
	for i := 0; i < len(qualifyingNodes)-1; i++ {
		occ, ok := gmod.OccurrenceOf(targetGmod, qualifyingNodes[i].converted)
		if !ok {
			return nil, false, fmt.Errorf("versioning: converted node %q missing from target gmod", qualifyingNodes[i].converted.Code())
		}
		potentialParents = append(potentialParents, occ)
	}
	endOcc, ok := gmod.OccurrenceOf(targetGmod, targetEndNode)
	if !ok {
		return nil, false, fmt.Errorf("versioning: converted end node %q missing from target gmod", targetEndNode.Code())
	}

	if gmod.ValidChain(targetGmod, potentialParents, endOcc) {
		return gmod.NewPath(targetGmod, potentialParents, endOcc), true, nil
	}

	path := make([]gmod.GmodNode, 0, len(qualifyingNodes)*2)
	for i := 0; i < len(qualifyingNodes); i++ {
		qn := qualifyingNodes[i]
		if i > 0 && qn.converted.Code() == qualifyingNodes[i-1].converted.Code() {
			continue
		}

		codeChanged := qn.source.Code() != qn.converted.Code()

		sourceNormalAssignment, sourceHasNormal := sourceGmod.ProductType(qn.source)
		targetNormalAssignment, targetHasNormal := targetGmod.ProductType(qn.converted)
		normalAssignmentChanged := sourceHasNormal != targetHasNormal ||
			(sourceHasNormal && targetHasNormal && sourceNormalAssignment.Code() != targetNormalAssignment.Code())

		// A product-selection-changed branch has no counterpart here: the
		// original never sets that condition true either, so there is
		// nothing to port.
		switch {
		case codeChanged:
			var err error
			path, err = addToPath(targetGmod, path, qn.converted)
			if err != nil {
				return nil, false, err
			}

		case normalAssignmentChanged:
			wasDeleted := sourceHasNormal && !targetHasNormal

			var err error
			path, err = addToPath(targetGmod, path, qn.converted)
			if err != nil {
				return nil, false, err
			}

			if wasDeleted {
				if qn.converted.Code() == targetEndNode.Code() && i+1 < len(qualifyingNodes) {
					next := qualifyingNodes[i+1]
					if next.converted.Code() != qn.converted.Code() {
						return nil, false, fmt.Errorf("versioning: normal assignment end node %q was deleted", qn.converted.Code())
					}
				}
				continue
			}

			if qn.converted.Code() != targetEndNode.Code() && targetHasNormal {
				val := targetNormalAssignment
				if loc, has := qn.converted.Location(); has && val.IsIndividualizable(false, true) {
					val = val.WithLocation(loc)
				}
				path, err = addToPath(targetGmod, path, val)
				if err != nil {
					return nil, false, err
				}
				i++
			}

		default:
			var err error
			path, err = addToPath(targetGmod, path, qn.converted)
			if err != nil {
				return nil, false, err
			}
		}

		if len(path) > 0 && path[len(path)-1].Code() == targetEndNode.Code() {
			break
		}
	}

	if len(path) == 0 {
		return nil, false, fmt.Errorf("versioning: path reconstruction to %s resulted in an empty path", targetVersion)
	}
	if len(path) == 1 {
		occ, ok := gmod.OccurrenceOf(targetGmod, path[0])
		if !ok {
			return nil, false, fmt.Errorf("versioning: reconstructed node %q missing from target gmod", path[0].Code())
		}
		return gmod.NewPath(targetGmod, nil, occ), true, nil
	}

	parentOccs := make([]gmod.Occurrence, 0, len(path)-1)
	for _, n := range path[:len(path)-1] {
		occ, ok := gmod.OccurrenceOf(targetGmod, n)
		if !ok {
			return nil, false, fmt.Errorf("versioning: reconstructed node %q missing from target gmod", n.Code())
		}
		parentOccs = append(parentOccs, occ)
	}
	lastOcc, ok := gmod.OccurrenceOf(targetGmod, path[len(path)-1])
	if !ok {
		return nil, false, fmt.Errorf("versioning: reconstructed node %q missing from target gmod", path[len(path)-1].Code())
	}
	if !gmod.ValidChain(targetGmod, parentOccs, lastOcc) {
		return nil, false, fmt.Errorf("versioning: path reconstruction to %s did not produce a valid path", targetVersion)
	}
	return gmod.NewPath(targetGmod, parentOccs, lastOcc), true, nil
}

// addToPath appends node to path, first repairing the linkage if node
// isn't a structural child of path's current tail: it walks backward
// through path's already-built ancestors, asking Gmod.PathExistsBetween
// whether that ancestor can still reach node. The first ancestor that can
// wins — its discovered intermediates (location-individualized the same
// way node is, where applicable) are spliced in ahead of node. An
// ancestor that can't reach node is dropped entirely, provided another
// asset-function node remains among the ancestors at or above it;
// otherwise addToPath returns an error (GmodVersioning.cpp's addToPath,
// static helper).
func addToPath(targetGmod *gmod.Gmod, path []gmod.GmodNode, node gmod.GmodNode) ([]gmod.GmodNode, error) {
	if len(path) > 0 && !path[len(path)-1].IsChild(node.Code()) {
		for j := len(path) - 1; j >= 0; j-- {
			parent := path[j]

			currentParents := make([]string, j+1)
			for k := 0; k <= j; k++ {
				currentParents[k] = path[k].Code()
			}

			exists, remaining := targetGmod.PathExistsBetween(currentParents, node.Code())
			if !exists {
				hasOtherAssetFunction := false
				for _, pn := range path[:j+1] {
					if pn.IsAssetFunctionNode() && pn.Code() != parent.Code() {
						hasOtherAssetFunction = true
						break
					}
				}
				if !hasOtherAssetFunction {
					return nil, fmt.Errorf("versioning: tried to remove the last asset function node while repairing a path to %q", node.Code())
				}
				path = append(path[:j], path[j+1:]...)
				continue
			}

			loc, hasLoc := node.Location()
			for _, code := range remaining {
				n, ok := targetGmod.TryGetNode(code)
				if !ok {
					continue
				}
				if hasLoc && n.IsIndividualizable(false, true) {
					n = n.WithLocation(loc)
				}
				path = append(path, n)
			}
			break
		}
	}

	return append(path, node), nil
}
