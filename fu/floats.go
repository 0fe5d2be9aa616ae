package fu

func Mean(a []float64) float64 {
	var c float64
	for _, x := range a {
		c += x
	}
	return c / float64(len(a))
}

/*
WeightedMean computes sum(a[i]*w[i])/sum(w) for parallel slices a and w
*/
func WeightedMean(a, w []float64) float64 {
	var c, n float64
	for i, x := range a {
		c += x * w[i]
		n += w[i]
	}
	return c / n
}
