package versioning

import (
	"fmt"

	"github.com/ronan-fesselier/vista-sdk-go/gmod"
	"github.com/ronan-fesselier/vista-sdk-go/localid"
	"github.com/ronan-fesselier/vista-sdk-go/visversion"
)

// ConvertLocalID converts a LocalIdBuilder's primary and (if present)
// secondary items to targetVersion, preserving verbose mode and every
// metadata tag unchanged (GmodVersioning::convertLocalId). Either item
// failing to convert fails the whole conversion, matching the original's
// all-or-nothing std::optional chain.
func (v *Versioning) ConvertLocalID(source localid.Builder, targetVersion visversion.VisVersion, gmods GmodSource) (localid.Builder, error) {
	sourceVersion, ok := source.VisVersion()
	if !ok {
		return localid.Builder{}, fmt.Errorf("versioning: cannot convert a local id without a source VIS version")
	}

	var primaryOut, secondaryOut *gmod.Path

	if primary, ok := source.Items().PrimaryItem(); ok {
		converted, err := v.ConvertPath(sourceVersion, primary, targetVersion, gmods)
		if err != nil {
			return localid.Builder{}, fmt.Errorf("versioning: converting primary item: %w", err)
		}
		if converted == nil {
			return localid.Builder{}, fmt.Errorf("versioning: primary item has no equivalent in %s", targetVersion)
		}
		primaryOut = converted
	}

	if secondary, ok := source.Items().SecondaryItem(); ok {
		converted, err := v.ConvertPath(sourceVersion, secondary, targetVersion, gmods)
		if err != nil {
			return localid.Builder{}, fmt.Errorf("versioning: converting secondary item: %w", err)
		}
		if converted == nil {
			return localid.Builder{}, fmt.Errorf("versioning: secondary item has no equivalent in %s", targetVersion)
		}
		secondaryOut = converted
	}

	target := localid.NewBuilder().
		WithVisVersion(targetVersion).
		WithItems(localid.NewItems(primaryOut, secondaryOut)).
		WithVerboseMode(source.VerboseMode())

	for _, tag := range source.MetadataTags() {
		target = target.WithMetadataTag(tag)
	}

	return target, nil
}

// ConvertLocalIDValue is ConvertLocalID for an already-frozen LocalID.
func (v *Versioning) ConvertLocalIDValue(source localid.LocalID, targetVersion visversion.VisVersion, gmods GmodSource) (localid.LocalID, error) {
	b, err := v.ConvertLocalID(source.Builder(), targetVersion, gmods)
	if err != nil {
		return localid.LocalID{}, err
	}
	return localid.Build(b)
}
