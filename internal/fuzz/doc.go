// Package fuzztests houses Go fuzz harnesses for the format analyzer and
// the renderer. They guard against panics and check the table invariants
// on arbitrary input.
//
// Назначение: прогонять произвольные строки через format.Analyze в обоих
// профилях и печатать принятые форматы через render.
//
// Не делает: проверку исходников Go, запись файлов, выполнение CLI.
package fuzztests
