package engine

import (
	"context"

	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/protocol"
)

// meshView triangulates handle into the copy-on-send snapshot the shell
// receives. When mesher also implements kernel.FaceMesher, triangles are
// recovered face-by-face so FaceRanges can map each run back to the
// GeomRef (signature-selected, anchored on anchorFeatureID) that
// produced it; otherwise the whole solid collapses into one
// unattributed range.
func meshView(ctx context.Context, mesher kernel.Mesher, introspect kernel.Introspect, handle kernel.SolidHandle, anchorFeatureID string) (protocol.MeshView, error) {
	faceMesher, ok := mesher.(kernel.FaceMesher)
	if !ok || introspect == nil {
		tris, err := mesher.Mesh(ctx, handle)
		if err != nil {
			return protocol.MeshView{}, err
		}
		return flatten(tris, nil), nil
	}

	faces, err := introspect.ListFaces(ctx, handle)
	if err != nil {
		return protocol.MeshView{}, err
	}

	var all []kernel.Triangle
	var ranges []protocol.FaceRange
	for _, faceID := range faces {
		tris, err := faceMesher.MeshFace(ctx, handle, faceID)
		if err != nil {
			return protocol.MeshView{}, err
		}
		if len(tris) == 0 {
			continue
		}
		faceSig, err := introspect.Signature(ctx, faceID)
		if err != nil {
			return protocol.MeshView{}, err
		}

		start := len(all)
		all = append(all, tris...)
		ranges = append(ranges, protocol.FaceRange{
			GeomRef: geomref.GeomRef{
				Kind:   geomref.KindFace,
				Anchor: geomref.Anchor{Kind: geomref.AnchorFeature, FeatureID: anchorFeatureID},
				Selector: geomref.Selector{
					Kind:      geomref.SelectorSignature,
					Signature: faceSig,
				},
			},
			StartIndex: start,
			EndIndex:   len(all),
		})
	}
	return flatten(all, ranges), nil
}

func flatten(tris []kernel.Triangle, ranges []protocol.FaceRange) protocol.MeshView {
	view := protocol.MeshView{
		Vertices:   make([][3]float64, 0, len(tris)*3),
		Normals:    make([][3]float64, 0, len(tris)*3),
		Indices:    make([]int, 0, len(tris)*3),
		FaceRanges: ranges,
	}
	for _, t := range tris {
		base := len(view.Vertices)
		for _, v := range [3]struct{ X, Y, Z float64 }{
			{t.A.X, t.A.Y, t.A.Z}, {t.B.X, t.B.Y, t.B.Z}, {t.C.X, t.C.Y, t.C.Z},
		} {
			view.Vertices = append(view.Vertices, [3]float64{v.X, v.Y, v.Z})
			view.Normals = append(view.Normals, [3]float64{t.Normal.X, t.Normal.Y, t.Normal.Z})
		}
		view.Indices = append(view.Indices, base, base+1, base+2)
	}
	return view
}
