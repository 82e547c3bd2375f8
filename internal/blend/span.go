// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

// MaskSpan composites a solid premultiplied color into a row of RGBA
// pixels, modulated by per-pixel coverage.
//
// dst holds 4 bytes per pixel and mask one byte per pixel; the shorter of
// the two bounds the span. Pixels with zero coverage are left untouched.
func MaskSpan(dst, mask []byte, src [4]byte, mode Mode) {
	fn := Get(mode)
	n := len(mask)
	if len(dst)/4 < n {
		n = len(dst) / 4
	}
	for i := 0; i < n; i++ {
		cov := mask[i]
		if cov == 0 {
			continue
		}
		sr, sg, sb, sa := src[0], src[1], src[2], src[3]
		if cov != 255 {
			sr = MulDiv255(sr, cov)
			sg = MulDiv255(sg, cov)
			sb = MulDiv255(sb, cov)
			sa = MulDiv255(sa, cov)
		}
		p := dst[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = fn(sr, sg, sb, sa, p[0], p[1], p[2], p[3])
	}
}
