// Package scenes 实现游戏的两个场景：主菜单与对局
//
// 场景切换只决定每帧模拟什么，渲染循环从不停下：菜单是
// 渲染状态机的空闲态，对局场景内部再分倒计时、进行中、
// 结算三个阶段。
package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// rect 屏幕上的可点击区域
type rect struct {
	x, y, w, h float64
}

func (r rect) contains(px, py float64) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// drawBackdrop 把背景图铺满整个逻辑窗口
// 素材缺失时退回纯色，场景永远有一张画布
func drawBackdrop(screen *ebiten.Image, img *ebiten.Image, fallback color.RGBA) {
	if img == nil {
		screen.Fill(fallback)
		return
	}
	bounds := img.Bounds()
	screenBounds := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(screenBounds.Dx())/float64(bounds.Dx()),
		float64(screenBounds.Dy())/float64(bounds.Dy()),
	)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawLabel 在 (x, y) 处绘制一行文本
// 字体缺失时退回调试文本，保证界面永远可读
func drawLabel(screen *ebiten.Image, str string, x, y float64, clr color.Color, face *text.GoTextFace) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawLabelCentered 以 centerX 为水平中心绘制一行文本
func drawLabelCentered(screen *ebiten.Image, str string, centerX, y float64, clr color.Color, face *text.GoTextFace) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(centerX)-len(str)*3, int(y))
		return
	}
	width := text.Advance(str, face)
	drawLabel(screen, str, centerX-width/2, y, clr, face)
}

// labelWidth 返回文本的像素宽度，字体缺失时按调试文本估算
func labelWidth(str string, face *text.GoTextFace) float64 {
	if face == nil {
		return float64(len(str) * 6)
	}
	return text.Advance(str, face)
}
