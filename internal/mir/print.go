package mir

import (
	"fmt"
	"io"
	"strings"

	"corec/internal/types"
)

// DumpModule writes a human-readable textual form of m, the format
// internal/emit's text backend serialises to disk (spec.md §5.1).
func DumpModule(w io.Writer, m *MirModule, in *types.Interner) error {
	if w == nil || m == nil {
		return nil
	}
	fmt.Fprintf(w, "externals=%d\n", len(m.ExternalFunctions))
	for _, ext := range m.ExternalFunctions {
		fmt.Fprintf(w, "  extern fn %s%s\n", ext.Name, sigStr(in, ext.Sig))
	}
	fmt.Fprintf(w, "funcs=%d\n", len(m.Functions))
	for _, f := range m.Functions {
		if err := dumpFunc(w, f, in); err != nil {
			return err
		}
	}
	return nil
}

func sigStr(in *types.Interner, sig MirFunctionSig) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = typeStr(in, p)
	}
	ret := typeStr(in, sig.Return.Type)
	return "(" + strings.Join(params, ", ") + ") -> " + ret
}

func typeStr(in *types.Interner, id types.TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case types.KindPrimitive:
		return t.Prim.String()
	case types.KindStruct, types.KindEnum:
		return t.Name
	case types.KindReference:
		if t.IsMutable {
			return "&mut " + typeStr(in, t.Referent)
		}
		return "&" + typeStr(in, t.Referent)
	case types.KindArray:
		return fmt.Sprintf("[%s; %d]", typeStr(in, t.Referent), t.ArraySize)
	case types.KindUnit:
		return "()"
	case types.KindNever:
		return "!"
	default:
		return "_"
	}
}

func dumpFunc(w io.Writer, f *MirFunction, in *types.Interner) error {
	fmt.Fprintf(w, "\nfn %s%s:\n", f.Name, sigStr(in, f.Sig))
	fmt.Fprintf(w, "  locals:\n")
	for _, l := range f.Locals {
		name := l.Name
		if name == "" {
			name = "_"
		}
		flags := ""
		if l.Nrvo {
			flags += " nrvo"
		}
		if l.ParamIndex >= 0 {
			flags += fmt.Sprintf(" param=%d", l.ParamIndex)
		}
		fmt.Fprintf(w, "    l%d: %s%s name=%s\n", l.ID, typeStr(in, l.Type), flags, name)
	}
	for _, b := range f.BasicBlocks {
		fmt.Fprintf(w, "  bb%d:\n", b.ID)
		for _, phi := range b.Phis {
			incoming := make([]string, len(phi.Incoming))
			for i, in2 := range phi.Incoming {
				incoming[i] = fmt.Sprintf("bb%d: %s", in2.Pred, operandStr(in2.Value))
			}
			fmt.Fprintf(w, "    t%d = phi %s(%s)\n", phi.Dst, typeStr(in, phi.Type), strings.Join(incoming, ", "))
		}
		for _, s := range b.Stmts {
			fmt.Fprintf(w, "    %s\n", stmtStr(in, s))
		}
		fmt.Fprintf(w, "    %s\n", termStr(b.Term))
	}
	return nil
}

func operandStr(op Operand) string {
	if op.Kind == OperandConst {
		return constStr(op.Const)
	}
	return fmt.Sprintf("t%d", op.Temp)
}

func constStr(c ConstValue) string {
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", c.Int)
	case ConstUint:
		return fmt.Sprintf("%d", c.Uint)
	case ConstBool:
		return fmt.Sprintf("%t", c.Bool)
	case ConstChar:
		return fmt.Sprintf("%q", c.Char)
	case ConstString:
		return fmt.Sprintf("%q", c.String)
	case ConstUnit:
		return "()"
	default:
		return "<none>"
	}
}

func placeStr(p Place) string {
	var sb strings.Builder
	if p.Base == PlaceLocalBase {
		fmt.Fprintf(&sb, "l%d", p.Local)
	} else {
		fmt.Fprintf(&sb, "*t%d", p.Pointer)
	}
	for _, proj := range p.Projs {
		if proj.Kind == ProjField {
			fmt.Fprintf(&sb, ".%d", proj.Field)
		} else {
			fmt.Fprintf(&sb, "[%s]", operandStr(proj.Index))
		}
	}
	return sb.String()
}

func stmtStr(in *types.Interner, s Statement) string {
	switch s.Kind {
	case StmtDefine:
		return fmt.Sprintf("t%d = %s", s.Define.Dst, rvalueStr(s.Define.Value))
	case StmtAssign:
		return fmt.Sprintf("%s = %s", placeStr(s.Assign.Dst), operandStr(s.Assign.Src))
	case StmtLoad:
		return fmt.Sprintf("t%d = load %s", s.Load.Dst, placeStr(s.Load.Src))
	case StmtInit:
		return fmt.Sprintf("init %s = %s", placeStr(s.Init.Dst), initStr(s.Init.Pattern))
	case StmtCall:
		return callStr(s.Call)
	default:
		return "<stmt>"
	}
}

func initStr(p InitPattern) string {
	if p.Kind == InitStruct {
		parts := make([]string, len(p.Fields))
		for i, f := range p.Fields {
			parts[i] = fmt.Sprintf(".%d: %s", f.Field, operandStr(f.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	if p.Repeat != nil {
		return fmt.Sprintf("[%s; %d]", operandStr(*p.Repeat), p.Count)
	}
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = operandStr(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func rvalueStr(v RValue) string {
	switch v.Kind {
	case RVUse:
		return operandStr(v.Use)
	case RVBinary:
		return fmt.Sprintf("%s %v %s", operandStr(v.Binary.Lhs), v.Binary.Op, operandStr(v.Binary.Rhs))
	case RVUnary:
		return fmt.Sprintf("%v %s", v.Unary.Op, operandStr(v.Unary.Operand))
	case RVCast:
		return fmt.Sprintf("%s as _", operandStr(v.Cast.Operand))
	case RVRef:
		if v.Ref.Mutable {
			return "&mut " + placeStr(v.Ref.Place)
		}
		return "&" + placeStr(v.Ref.Place)
	default:
		return "<rvalue>"
	}
}

func calleeStr(ref FunctionRef) string {
	if ref.Kind == FuncRefExternal {
		return ref.External
	}
	return fmt.Sprintf("f%d", ref.Internal)
}

func callStr(c CallStmt) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = operandStr(a)
	}
	call := fmt.Sprintf("call %s(%s)", calleeStr(c.Callee), strings.Join(args, ", "))
	switch c.DstKind {
	case CallDstTemp:
		return fmt.Sprintf("t%d = %s", c.DstTemp, call)
	case CallDstSRet:
		return fmt.Sprintf("%s <- %s", placeStr(c.DstPlace), call)
	default:
		return call
	}
}

func termStr(t Terminator) string {
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("goto bb%d", t.Goto.Target)
	case TermSwitchInt:
		cases := make([]string, len(t.Switch.Targets))
		for i, c := range t.Switch.Targets {
			cases[i] = fmt.Sprintf("%s: bb%d", constStr(c.Value), c.Target)
		}
		return fmt.Sprintf("switch %s [%s] otherwise bb%d", operandStr(t.Switch.Discriminant), strings.Join(cases, ", "), t.Switch.Otherwise)
	case TermReturn:
		if t.Return.HasValue {
			return fmt.Sprintf("return %s", operandStr(t.Return.Value))
		}
		return "return"
	default:
		return "<unterminated>"
	}
}
