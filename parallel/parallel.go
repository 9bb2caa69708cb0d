package parallel

import (
	"sync"
)

// DistributeIndicesEvenly は [0, n) をp個の連続した区間に分けます。
// 前の区間ほど最大で1つ多くのインデックスを持ちます。
func DistributeIndicesEvenly(n, p int) [][]int {
	if p <= 0 {
		panic("parallel.DistributeIndicesEvenly: p must be positive")
	}
	if n < 0 {
		n = 0
	}
	idxss := make([][]int, p)
	base := n / p
	rem := n % p
	start := 0
	for w := 0; w < p; w++ {
		size := base
		if w < rem {
			size++
		}
		idxs := make([]int, size)
		for i := range idxs {
			idxs[i] = start + i
		}
		idxss[w] = idxs
		start += size
	}
	return idxss
}

// For は [0, n) をp個のゴルーチンに分配し、全て終わるまで待ちます。
// fの第1引数はワーカー番号です。異なるワーカーが同じインデックスを受け取ることはありません。
func For(n, p int, f func(workerIdx, idx int)) {
	var wg sync.WaitGroup
	for workerIdx, idxs := range DistributeIndicesEvenly(n, p) {
		if len(idxs) == 0 {
			continue
		}
		wg.Add(1)
		go func(workerIdx int, idxs []int) {
			defer wg.Done()
			for _, idx := range idxs {
				f(workerIdx, idx)
			}
		}(workerIdx, idxs)
	}
	wg.Wait()
}
