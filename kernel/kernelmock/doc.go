// Package kernelmock holds gomock doubles of kernel.Kernel and
// kernel.Introspect for unit tests that need to drive specific kernel
// failures without a real solid model behind them.
package kernelmock

//go:generate mockgen -write_package_comment=false -package=kernelmock -destination=mock_kernel.go github.com/foundrycad/waffle-iron/kernel Kernel,Introspect
