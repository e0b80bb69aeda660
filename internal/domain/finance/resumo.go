package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rafaelduarte/gestor-compras/internal/domain/order"
)

// CalcularResumo monta o sumário de lucro a partir dos pedidos e do total
// de custos diversos. Apenas itens já comprados entram na conta; o custo
// total inclui compra, frete de compra, imposto e frete de envio.
func CalcularResumo(pedidos []*order.PurchaseOrder, custosDiversos decimal.Decimal) *ResumoLucro {
	resumo := &ResumoLucro{
		TotalVenda:     decimal.Zero,
		TotalCusto:     decimal.Zero,
		LucroBruto:     decimal.Zero,
		CustosDiversos: custosDiversos,
	}

	porResponsavel := make(map[string]*LucroResponsavel)

	for _, po := range pedidos {
		temComprado := false
		for i := range po.Items {
			it := &po.Items[i]
			if !it.Status.ElegivelEstoque() {
				continue
			}
			temComprado = true
			resumo.QtdItensComprados++

			venda := it.TotalVenda()
			custo := it.TotalCusto().Add(it.TotalFrete()).Add(it.Imposto).Add(it.FreteEnvio)
			lucro := it.LucroLiquido()

			resumo.TotalVenda = resumo.TotalVenda.Add(venda)
			resumo.TotalCusto = resumo.TotalCusto.Add(custo)
			resumo.LucroBruto = resumo.LucroBruto.Add(lucro)

			if it.Responsavel == "" {
				continue
			}
			lr, ok := porResponsavel[it.Responsavel]
			if !ok {
				lr = &LucroResponsavel{
					Responsavel: it.Responsavel,
					TotalVenda:  decimal.Zero,
					Lucro:       decimal.Zero,
				}
				porResponsavel[it.Responsavel] = lr
			}
			lr.TotalVenda = lr.TotalVenda.Add(venda)
			lr.Lucro = lr.Lucro.Add(lucro)
			lr.QtdItens++
		}
		if temComprado {
			resumo.QtdPedidos++
		}
	}

	resumo.LucroFinal = resumo.LucroBruto.Sub(custosDiversos)

	nomes := make([]string, 0, len(porResponsavel))
	for nome := range porResponsavel {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)

	resumo.PorResponsavel = make([]LucroResponsavel, 0, len(nomes))
	for _, nome := range nomes {
		resumo.PorResponsavel = append(resumo.PorResponsavel, *porResponsavel[nome])
	}

	return resumo
}
