package hir

import "corec/internal/ast"

func (c *Converter) convertFn(n *ast.FnItem) *Function {
	fn := &Function{Name: n.Name, ReturnType: NewAnnotation(n.Ret)}
	for _, p := range n.Params {
		fn.Params = append(fn.Params, c.convertParam(&p))
	}
	fn.Body = c.convertBlock(n.Body)
	return fn
}

func (c *Converter) convertMethod(n *ast.FnItem) *Method {
	m := &Method{Name: n.Name, ReturnType: NewAnnotation(n.Ret)}
	for _, p := range n.Params {
		if p.IsSelf {
			m.SelfRef = p.SelfRef
			m.SelfMut = p.SelfMut
			m.SelfLocal = &Local{Name: "self", IsMutable: p.SelfMut}
			continue
		}
		m.Params = append(m.Params, c.convertParam(&p))
	}
	m.Body = c.convertBlock(n.Body)
	return m
}

func (c *Converter) convertParam(p *ast.Param) *Local {
	return &Local{Name: p.Name, Type: NewAnnotation(p.Type)}
}
