package mathx

// ConvertScale は[xMin, xMax]の値を[yMin, yMax]へ線形に写します。
func ConvertScale(x, xMin, xMax, yMin, yMax float32) float32 {
	return yMin + (yMax-yMin)*(x-xMin)/(xMax-xMin)
}

// CentralDifference は f(x+h) と f(x-h) から数値微分を求めます。
func CentralDifference(plusY, minusY, h float32) float32 {
	return (plusY - minusY) / (2.0 * h)
}
