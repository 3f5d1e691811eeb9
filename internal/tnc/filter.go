package tnc

/*------------------------------------------------------------------
 *
 * Purpose:	Biquad IIR filters: low-pass, high-pass, band-pass and
 *		a high-shelf (Audio EQ Cookbook) cascade.
 *
 * Description:	Each variant is a cascade of Direct-Form-II-Transposed
 *		second-order sections. Low-pass/high-pass use n=order/2
 *		Butterworth sections with the pre-warped bilinear
 *		transform; band-pass uses n=order/4 fourth-order
 *		sections (two cascaded biquads per section); high-shelf
 *		uses n=order/2 stages of the RBJ cookbook shelving
 *		biquad with S=1 (Butterworth-shaped shelf).
 *
 *---------------------------------------------------------------*/

import "math"

// biquadSection holds one Direct-Form-II-Transposed second-order
// section: coefficients a1,a2,b0,b1,b2 (a0 normalized to 1) and the
// two delay registers z1,z2.
type biquadSection struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

func (s *biquadSection) process(x float64) float64 {
	y := s.b0*x + s.z1
	s.z1 = s.b1*x - s.a1*y + s.z2
	s.z2 = s.b2*x - s.a2*y
	return y
}

// Filter is a cascade of biquad sections implementing one of the four
// filter kinds below.
type Filter struct {
	sections []biquadSection
}

// LowPass builds an order-th order (order must be even) Butterworth
// low-pass filter at cutoff Hz for the given sample rate.
func LowPass(order int, cutoff, sampleRate float64) *Filter {
	f := &Filter{}
	n := order / 2
	warped := 2 * sampleRate * math.Tan(math.Pi*cutoff/sampleRate)
	for k := 0; k < n; k++ {
		f.sections = append(f.sections, butterworthLowHighSection(n, k, warped, sampleRate, false))
	}
	return f
}

// HighPass builds an order-th order Butterworth high-pass filter.
func HighPass(order int, cutoff, sampleRate float64) *Filter {
	f := &Filter{}
	n := order / 2
	warped := 2 * sampleRate * math.Tan(math.Pi*cutoff/sampleRate)
	for k := 0; k < n; k++ {
		f.sections = append(f.sections, butterworthLowHighSection(n, k, warped, sampleRate, true))
	}
	return f
}

// butterworthLowHighSection builds the k-th second-order section (of n)
// of a bilinear-transformed Butterworth low-pass or high-pass filter
// with pre-warped analog corner frequency wa (rad/s).
func butterworthLowHighSection(n, k int, wa, fs float64, highPass bool) biquadSection {
	// Analog Butterworth pole angle for this section (poles come in
	// conjugate pairs placed symmetrically around the unit circle).
	theta := math.Pi * (2*float64(k) + 1) / (4 * float64(n))
	// Analog prototype section: s^2 - 2*real(pole)*wa*s + wa^2, real(pole)=-sin(theta).
	alpha := wa * math.Sin(theta)
	wa2 := wa * wa

	// Bilinear transform s = 2*fs*(1-z^-1)/(1+z^-1).
	k0 := 2 * fs
	k0sq := k0 * k0

	var b0, b1, b2, a0, a1, a2 float64
	if !highPass {
		b0 = wa2
		b1 = 2 * wa2
		b2 = wa2
	} else {
		b0 = k0sq
		b1 = -2 * k0sq
		b2 = k0sq
	}
	a0 = k0sq + 2*alpha*k0 + wa2
	a1 = 2*wa2 - 2*k0sq
	a2 = k0sq - 2*alpha*k0 + wa2

	return biquadSection{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// BandPass builds an order-th order filter (order must be a multiple
// of 4) as n=order/4 cascaded fourth-order (two-biquad) sections
// covering [lowCutoff, highCutoff].
func BandPass(order int, lowCutoff, highCutoff, sampleRate float64) *Filter {
	f := &Filter{}
	n := order / 4
	center := math.Sqrt(lowCutoff * highCutoff)
	bw := highCutoff - lowCutoff
	q := center / bw
	for k := 0; k < n; k++ {
		// Each fourth-order section is a pair of RBJ band-pass
		// biquads tuned to the same center/Q, matching the
		// cascaded structure the teacher's pfilter.c uses for bpf.
		f.sections = append(f.sections, rbjBandPass(center, q, sampleRate))
		f.sections = append(f.sections, rbjBandPass(center, q, sampleRate))
	}
	return f
}

func rbjBandPass(center, q, fs float64) biquadSection {
	w0 := 2 * math.Pi * center / fs
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)

	b0 := alpha
	b1 := 0.0
	b2 := -alpha
	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return biquadSection{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// HighShelf builds an order-th order (order must be even) high-shelf
// cascade using the Audio EQ Cookbook shelving biquad with shelf
// slope S=1 (Butterworth-shaped shelf), boosting/cutting by gainDB
// above cutoff Hz.
func HighShelf(order int, cutoff, sampleRate, gainDB float64) *Filter {
	f := &Filter{}
	n := order / 2
	for k := 0; k < n; k++ {
		f.sections = append(f.sections, rbjHighShelf(cutoff, sampleRate, gainDB))
	}
	return f
}

func rbjHighShelf(cutoff, fs, gainDB float64) biquadSection {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * cutoff / fs
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	const s = 1.0 // shelf slope: S=1 gives the Butterworth-shaped shelf
	alpha := sinW0 / 2 * math.Sqrt((a+1/a)*(1/s-1)+2)
	twoSqrtAAlpha := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cosW0 + twoSqrtAAlpha)
	b1 := -2 * a * ((a - 1) + (a+1)*cosW0)
	b2 := a * ((a + 1) + (a-1)*cosW0 - twoSqrtAAlpha)
	a0 := (a + 1) - (a-1)*cosW0 + twoSqrtAAlpha
	a1 := 2 * ((a - 1) - (a+1)*cosW0)
	a2 := (a + 1) - (a-1)*cosW0 - twoSqrtAAlpha

	return biquadSection{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// Process filters one sample through the full cascade, updating state.
func (f *Filter) Process(x float32) float32 {
	v := float64(x)
	for i := range f.sections {
		v = f.sections[i].process(v)
	}
	return float32(v)
}
