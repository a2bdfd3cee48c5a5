// Package tess turns path command streams into anti-aliased triangle
// geometry for a GPU backend.
//
// A Tessellator flattens curves into polylines (adaptive forward
// differencing), fixes contour winding, classifies convexity and then
// expands the contours either for filling or for stroking. The result is
// a flat vertex array in which every contour owns a fill range (a
// triangle fan) and a stroke range (a triangle strip). Mesh collects the
// ranges of many draws into shared vertex and index buffers, one DrawCall
// per fill or stroke.
//
// Vertices carry a position and a uv pair. The u coordinate runs across
// the fringe and is turned into coverage by the shader; v is zero on the
// outer rim of butt and square caps.
//
// Basic usage:
//
//	t, err := tess.New(tess.DefaultOptions().ForPixelRatio(2))
//	if err != nil {
//	    return err
//	}
//	var m tess.Mesh
//	m.Fill(t, path, reui.Identity(), reui.SolidPaint(reui.RGB(1, 0, 0)), 1)
//	m.Stroke(t, path, reui.Identity(), reui.SolidPaint(reui.RGB(0, 0, 0)), 1, tess.DefaultStrokeStyle())
//
// A Tessellator reuses its buffers between calls and is not safe for
// concurrent use. Each Flatten invalidates the points, contours and
// vertices of the previous one.
package tess
